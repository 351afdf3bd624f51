// Package tagging infers subject tags from note content using a fixed
// keyword table. It is intentionally dumb: no models, no persistence,
// just case-insensitive substring counting.
package tagging

import "strings"

type topic struct {
	tag      string
	keywords []string
}

var topics = []topic{
	{"computer science", []string{"algorithm", "programming", "code", "data structure", "software", "database", "web", "network"}},
	{"biology", []string{"cell", "mitochondria", "organism", "species", "evolution", "dna", "rna", "protein", "gene", "ecology"}},
	{"chemistry", []string{"reaction", "molecule", "atom", "compound", "element", "periodic", "acid", "base", "organic"}},
	{"physics", []string{"force", "energy", "motion", "quantum", "relativity", "particle", "wave", "mechanics", "thermodynamics"}},
	{"mathematics", []string{"equation", "theorem", "proof", "calculus", "algebra", "geometry", "statistics", "probability"}},
	{"history", []string{"war", "revolution", "century", "ancient", "medieval", "empire", "civilization", "president", "king"}},
	{"literature", []string{"novel", "poem", "author", "character", "theme", "plot", "narrative", "essay", "fiction"}},
	{"psychology", []string{"behavior", "cognitive", "therapy", "mental", "emotion", "brain", "consciousness", "development"}},
	{"economics", []string{"market", "price", "demand", "supply", "inflation", "gdp", "economy", "trade", "fiscal"}},
	{"philosophy", []string{"ethics", "metaphysics", "epistemology", "logic", "existentialism", "knowledge", "reality"}},
	{"art", []string{"painting", "sculpture", "artist", "museum", "gallery", "composition", "aesthetic", "visual"}},
	{"music", []string{"song", "rhythm", "melody", "harmony", "composer", "instrument", "chord", "scale", "tempo"}},
	{"medicine", []string{"disease", "treatment", "symptom", "diagnosis", "patient", "hospital", "drug", "surgery"}},
	{"environmental science", []string{"climate", "ecosystem", "pollution", "conservation", "sustainability", "renewable"}},
	{"astronomy", []string{"planet", "star", "galaxy", "universe", "cosmic", "solar", "telescope", "orbit", "nebula"}},
	{"geology", []string{"rock", "mineral", "earthquake", "volcano", "plate", "tectonic", "sediment", "erosion"}},
	{"political science", []string{"government", "policy", "election", "democracy", "constitution", "law", "rights"}},
	{"sociology", []string{"society", "culture", "social", "class", "inequality", "gender", "race", "ethnicity"}},
	{"anthropology", []string{"culture", "ritual", "tradition", "kinship", "ethnography", "archaeology", "tribe"}},
	{"linguistics", []string{"language", "grammar", "syntax", "semantics", "phonetics", "dialect", "morphology"}},
	{"education", []string{"learning", "teaching", "student", "school", "curriculum", "assessment", "pedagogy"}},
	{"computer network", []string{"tcp", "ip", "protocol", "router", "packet", "ethernet", "wifi", "lan", "wan"}},
	{"data science", []string{"machine learning", "ai", "neural network", "data mining", "big data", "analytics"}},
	{"cybersecurity", []string{"encryption", "authentication", "firewall", "malware", "virus", "hack", "vulnerability"}},
	{"dna", []string{"gene", "allele", "chromosome", "genome", "nucleotide", "mutation", "helix", "replication"}},
	{"cell", []string{"mitochondria", "organelle", "cytoplasm"}},
	{"algorithm", []string{"sorting", "search", "complexity", "recursive", "optimization", "graph", "tree", "dynamic"}},
	{"database", []string{"sql", "query", "table", "index", "relational", "nosql", "schema", "transaction", "acid"}},
	{"acid", []string{"ph", "base", "proton", "hydrogen", "acidity", "hydroxide", "buffer", "neutralization"}},
}

// InferTags returns the topic tags whose keywords show up in the text.
// A topic fires when at least two of its keywords appear; narrow topics
// with three or fewer keywords fire on a single match.
func InferTags(text string) []string {
	lowered := strings.ToLower(text)

	var tags []string
	for _, t := range topics {
		matches := 0
		for _, kw := range t.keywords {
			if strings.Contains(lowered, kw) {
				matches++
			}
		}
		if (len(t.keywords) > 3 && matches >= 2) || (len(t.keywords) <= 3 && matches >= 1) {
			tags = append(tags, t.tag)
		}
	}
	return tags
}
