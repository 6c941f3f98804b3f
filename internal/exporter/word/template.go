package word

import (
	"archive/zip"
	"bytes"
)

// Placeholders replaced in the generated document
const (
	placeholderDate        = "{{Date}}"
	placeholderRoot        = "{{Root}}"
	placeholderEndpoints   = "{{TotalEndpoints}}"
	placeholderControllers = "{{TotalControllers}}"
	placeholderContent     = "{{Content}}"
)

var templateParts = []struct {
	name    string
	content string
}{
	{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`},
	{"_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`},
	// some readers refuse a package without document relationships
	{"word/_rels/document.xml.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
</Relationships>`},
	{"word/document.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:rPr><w:b/><w:sz w:val="36"/></w:rPr><w:t>Endpoint Index</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Project: ` + placeholderRoot + `</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Date: ` + placeholderDate + `</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Total Endpoints: ` + placeholderEndpoints + `</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Total Controllers: ` + placeholderControllers + `</w:t></w:r></w:p>
<w:p><w:r><w:rPr><w:rFonts w:ascii="Consolas" w:hAnsi="Consolas"/></w:rPr><w:t xml:space="preserve">` + placeholderContent + `</w:t></w:r></w:p>
</w:body>
</w:document>`},
}

// buildTemplate returns a minimal .docx package holding the placeholders
func buildTemplate() ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	for _, part := range templateParts {
		pw, err := w.Create(part.name)
		if err != nil {
			return nil, err
		}
		if _, err := pw.Write([]byte(part.content)); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
