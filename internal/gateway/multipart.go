package gateway

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

// FileUpload is one file part of a multipart request.
type FileUpload struct {
	Name   string
	Reader io.Reader
}

// Form accumulates fields and files for the multipart endpoints
// (note/PYQ upload, AI key update).
type Form struct {
	fields []formField
	files  []formFile
}

type formField struct{ name, value string }

type formFile struct {
	field string
	file  FileUpload
}

func NewForm() *Form { return &Form{} }

func (f *Form) Field(name, value string) *Form {
	f.fields = append(f.fields, formField{name, value})
	return f
}

// OptionalField skips empty values so absent optional form inputs are not
// sent as empty strings.
func (f *Form) OptionalField(name, value string) *Form {
	if value != "" {
		f.Field(name, value)
	}
	return f
}

func (f *Form) File(field string, file FileUpload) *Form {
	f.files = append(f.files, formFile{field, file})
	return f
}

func (f *Form) OptionalFile(field string, file *FileUpload) *Form {
	if file != nil && file.Reader != nil {
		f.File(field, *file)
	}
	return f
}

func (f *Form) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, fld := range f.fields {
		if err := w.WriteField(fld.name, fld.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", fld.name, err)
		}
	}
	for _, ff := range f.files {
		part, err := w.CreateFormFile(ff.field, ff.file.Name)
		if err != nil {
			return nil, "", fmt.Errorf("create file part %s: %w", ff.field, err)
		}
		if _, err := io.Copy(part, ff.file.Reader); err != nil {
			return nil, "", fmt.Errorf("copy file %s: %w", ff.field, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}
