package extract

import (
	"archive/zip"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"
)

// docxHTML converts word/document.xml into simple HTML: one <p> per
// paragraph, embedded images inlined as base64 data URLs (resolved
// through the document's relationship table).
func docxHTML(docPath string) (string, error) {
	r, err := zip.OpenReader(docPath)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer r.Close()

	var doc *zip.File
	media := make(map[string][]byte)
	rels := make(map[string]string)

	for _, f := range r.File {
		switch {
		case f.Name == "word/document.xml":
			doc = f
		case f.Name == "word/_rels/document.xml.rels":
			if rels, err = parseRelationships(f); err != nil {
				return "", err
			}
		case strings.HasPrefix(f.Name, "word/media/"):
			data, err := readZipFile(f)
			if err != nil {
				return "", err
			}
			media[f.Name] = data
		}
	}
	if doc == nil {
		return "", fmt.Errorf("docx is missing word/document.xml")
	}

	rc, err := doc.Open()
	if err != nil {
		return "", fmt.Errorf("open docx body: %w", err)
	}
	defer rc.Close()

	var out strings.Builder
	var para strings.Builder
	inPara := false

	decoder := xml.NewDecoder(rc)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse docx body: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				para.Reset()
				inPara = true
			case "t":
				var text string
				if err := decoder.DecodeElement(&text, &t); err != nil {
					return "", fmt.Errorf("parse docx body: %w", err)
				}
				para.WriteString(html.EscapeString(text))
			case "tab":
				para.WriteString("&#9;")
			case "br":
				para.WriteString("<br/>")
			case "blip":
				if img := inlineImage(t, rels, media); img != "" && inPara {
					para.WriteString(img)
				}
			}
		case xml.EndElement:
			if t.Name.Local == "p" && inPara {
				if para.Len() > 0 {
					out.WriteString("<p>" + para.String() + "</p>\n")
				}
				inPara = false
			}
		}
	}

	return out.String(), nil
}

// inlineImage resolves a blip's relationship id to its media file and
// renders it as a data-URL img tag.
func inlineImage(el xml.StartElement, rels map[string]string, media map[string][]byte) string {
	var relId string
	for _, attr := range el.Attr {
		if attr.Name.Local == "embed" {
			relId = attr.Value
			break
		}
	}
	if relId == "" {
		return ""
	}

	target, ok := rels[relId]
	if !ok {
		return ""
	}
	data, ok := media[path.Join("word", target)]
	if !ok {
		return ""
	}

	mimeType := mime.TypeByExtension(filepath.Ext(target))
	if mimeType == "" {
		mimeType = "image/png"
	}
	return fmt.Sprintf(`<img src="data:%s;base64,%s"/>`, mimeType, base64.StdEncoding.EncodeToString(data))
}

func parseRelationships(f *zip.File) (map[string]string, error) {
	data, err := readZipFile(f)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Relationships []struct {
			Id     string `xml:"Id,attr"`
			Target string `xml:"Target,attr"`
		} `xml:"Relationship"`
	}
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse docx relationships: %w", err)
	}

	rels := make(map[string]string, len(doc.Relationships))
	for _, rel := range doc.Relationships {
		rels[rel.Id] = rel.Target
	}
	return rels, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Name, err)
	}
	return data, nil
}
