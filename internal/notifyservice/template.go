package notifyservice

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*
var mailTemplates embed.FS

// Each mail template defines three sections rendered against the same data.
var templateSections = [3]string{"subject", "plainBody", "htmlBody"}

func NewTemplate() *Template {
	return &Template{}
}

// ParseTemplate renders the subject, plain body and HTML body sections of an
// embedded mail template.
func (tp *Template) ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error) {
	t, err := template.New("email").ParseFS(mailTemplates, "templates/"+name)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not parse template %s: %w", name, err)
	}

	var rendered [3]*bytes.Buffer
	for i, section := range templateSections {
		buf := new(bytes.Buffer)
		if err := t.ExecuteTemplate(buf, section, data); err != nil {
			return nil, nil, nil, fmt.Errorf("could not render %s of template %s: %w", section, name, err)
		}
		rendered[i] = buf
	}

	return rendered[0], rendered[1], rendered[2], nil
}
