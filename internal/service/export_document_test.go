package service

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samplePDF = []byte("%PDF-1.7\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")

func TestParseExportResponse(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(samplePDF)

	tests := []struct {
		name        string
		contentType string
		body        string
		want        ExportDocument
	}{
		{"pdf body", "application/pdf", string(samplePDF), BinaryDocument{Data: samplePDF, ContentType: "application/pdf"}},
		{"sniffed pdf", "application/octet-stream", string(samplePDF), BinaryDocument{Data: samplePDF, ContentType: "application/pdf"}},
		{"url", "application/json", `{"url":"https://cdn.example.com/r.pdf"}`, RemoteLink{URL: "https://cdn.example.com/r.pdf"}},
		{"signed url", "application/json; charset=utf-8", `{"signedUrl":"https://s.example.com/r.pdf?sig=1"}`, RemoteLink{URL: "https://s.example.com/r.pdf?sig=1"}},
		{"bucket and path", "application/json", `{"bucket":"reports","path":"a/b.pdf"}`, StoredObject{Bucket: "reports", Path: "a/b.pdf"}},
		{"path only", "application/json", `{"path":"a/b.pdf"}`, StoredObject{Path: "a/b.pdf"}},
		{"base64", "application/json", `{"pdf_base64":"` + encoded + `"}`, EncodedDocument{Data: encoded}},
		{"nested data", "application/json", `{"data":{"publicUrl":"https://cdn.example.com/x.pdf"}}`, RemoteLink{URL: "https://cdn.example.com/x.pdf"}},
		{"json without content type", "", `{"file_url":"https://cdn.example.com/y.pdf"}`, RemoteLink{URL: "https://cdn.example.com/y.pdf"}},
		{"link wins over data", "application/json", `{"url":"https://cdn.example.com/z.pdf","data":"` + encoded + `"}`, RemoteLink{URL: "https://cdn.example.com/z.pdf"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseExportResponse(tt.contentType, []byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc)
		})
	}
}

func TestParseExportResponse_Unrecognized(t *testing.T) {
	for _, body := range []string{"", `{"ok":true}`, "<html>error</html>", `{"url":""}`} {
		_, err := ParseExportResponse("", []byte(body))
		assert.ErrorIs(t, err, ErrUnrecognizedExport, body)
	}
}

func TestDecodeDocument(t *testing.T) {
	std := base64.StdEncoding.EncodeToString(samplePDF)
	for _, in := range []string{
		std,
		"data:application/pdf;base64," + std,
		base64.RawURLEncoding.EncodeToString(samplePDF),
		std[:40] + "\n" + std[40:],
	} {
		out, err := decodeDocument(in)
		require.NoError(t, err)
		assert.Equal(t, samplePDF, out)
	}
	_, err := decodeDocument("not base64 at all!")
	assert.ErrorIs(t, err, ErrUnrecognizedExport)
}

func TestMaterialize(t *testing.T) {
	ctx := context.Background()
	store := newFakeObjectStore()
	key := "audits/a1/reports/r.pdf"

	link, err := materialize(ctx, store, key, RemoteLink{URL: "https://cdn.example.com/r.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/r.pdf", link)
	assert.Empty(t, store.objects, "links are not re-uploaded")

	link, err = materialize(ctx, store, key, StoredObject{Bucket: "reports", Path: "x/y.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "https://files.example.com/reports/x/y.pdf", link)

	link, err = materialize(ctx, store, key, BinaryDocument{Data: samplePDF, ContentType: "application/pdf"})
	require.NoError(t, err)
	assert.Equal(t, "https://files.example.com/audit-files/"+key, link)
	assert.Equal(t, samplePDF, store.objects[key])

	store = newFakeObjectStore()
	link, err = materialize(ctx, store, key, EncodedDocument{Data: base64.StdEncoding.EncodeToString(samplePDF)})
	require.NoError(t, err)
	assert.Equal(t, "https://files.example.com/audit-files/"+key, link)
	assert.Equal(t, samplePDF, store.objects[key])
	assert.Equal(t, "application/pdf", store.types[key])

	_, err = materialize(ctx, store, key, RemoteLink{URL: "/relative/r.pdf"})
	assert.ErrorIs(t, err, ErrUnrecognizedExport)
}
