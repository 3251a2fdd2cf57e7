package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/lshigami/storeaudit/internal/storage"
)

// ExportDocument is what the PDF function produced, in one of the shapes it
// is known to answer with.
type ExportDocument interface {
	Shape() string
}

// BinaryDocument is a document returned as the response body.
type BinaryDocument struct {
	Data        []byte
	ContentType string
}

// RemoteLink is a ready-to-open URL returned in a JSON body.
type RemoteLink struct {
	URL string
}

// StoredObject points at a document the function wrote to object storage.
type StoredObject struct {
	Bucket string
	Path   string
}

// EncodedDocument is a base64 document embedded in a JSON body.
type EncodedDocument struct {
	Data string
}

func (BinaryDocument) Shape() string  { return "binary" }
func (RemoteLink) Shape() string      { return "link" }
func (StoredObject) Shape() string    { return "stored_object" }
func (EncodedDocument) Shape() string { return "encoded" }

var (
	linkKeys    = []string{"url", "signedUrl", "signed_url", "publicUrl", "public_url", "file_url", "fileUrl"}
	encodedKeys = []string{"pdf_base64", "pdfBase64", "base64", "pdf", "data"}
)

// ParseExportResponse recognizes the response of the PDF function. JSON keys
// are tried in order: a link, then a bucket and path pair, then an encoded
// document. A JSON "data" object is searched the same way.
func ParseExportResponse(contentType string, body []byte) (ExportDocument, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty response body", ErrUnrecognizedExport)
	}

	mediaType, _, _ := mime.ParseMediaType(contentType)
	switch {
	case mediaType == "application/pdf":
		return BinaryDocument{Data: body, ContentType: mediaType}, nil
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return parseExportJSON(body)
	}

	detected := mimetype.Detect(body)
	if detected.Is("application/pdf") {
		return BinaryDocument{Data: body, ContentType: "application/pdf"}, nil
	}
	if detected.Is("application/json") {
		return parseExportJSON(body)
	}
	return nil, fmt.Errorf("%w: content type %q (detected %s)", ErrUnrecognizedExport, contentType, detected.String())
}

func parseExportJSON(body []byte) (ExportDocument, error) {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %v", ErrUnrecognizedExport, err)
	}
	if doc := documentFromFields(fields); doc != nil {
		return doc, nil
	}
	if nested, ok := fields["data"].(map[string]any); ok {
		if doc := documentFromFields(nested); doc != nil {
			return doc, nil
		}
	}
	return nil, fmt.Errorf("%w: no link, storage path or encoded document in response", ErrUnrecognizedExport)
}

func documentFromFields(fields map[string]any) ExportDocument {
	if link := firstString(fields, linkKeys); link != "" {
		return RemoteLink{URL: link}
	}
	if path := firstString(fields, []string{"path", "key"}); path != "" {
		return StoredObject{Bucket: firstString(fields, []string{"bucket"}), Path: path}
	}
	if data := firstString(fields, encodedKeys); data != "" {
		return EncodedDocument{Data: data}
	}
	return nil
}

func firstString(fields map[string]any, keys []string) string {
	for _, k := range keys {
		if s, ok := fields[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// decodeDocument accepts standard or URL-safe base64, with or without
// padding and an optional data: URI prefix.
func decodeDocument(data string) ([]byte, error) {
	if strings.HasPrefix(data, "data:") {
		if i := strings.Index(data, ","); i >= 0 {
			data = data[i+1:]
		}
	}
	data = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == ' ' {
			return -1
		}
		return r
	}, data)

	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		if b, err := enc.DecodeString(data); err == nil {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: document is not valid base64", ErrUnrecognizedExport)
}

// materialize turns any export document into one stored, openable link.
// Binary and encoded documents are uploaded under key first.
func materialize(ctx context.Context, store storage.ObjectStore, key string, doc ExportDocument) (string, error) {
	switch d := doc.(type) {
	case RemoteLink:
		u, err := url.Parse(d.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return "", fmt.Errorf("%w: link %q is not an absolute http url", ErrUnrecognizedExport, d.URL)
		}
		return d.URL, nil
	case StoredObject:
		return store.URL(ctx, storage.Object{Bucket: d.Bucket, Key: d.Path})
	case EncodedDocument:
		data, err := decodeDocument(d.Data)
		if err != nil {
			return "", err
		}
		return materialize(ctx, store, key, BinaryDocument{Data: data, ContentType: mimetype.Detect(data).String()})
	case BinaryDocument:
		contentType := d.ContentType
		if contentType == "" {
			contentType = mimetype.Detect(d.Data).String()
		}
		obj, err := store.Put(ctx, key, contentType, d.Data)
		if err != nil {
			return "", err
		}
		return store.URL(ctx, obj)
	}
	return "", fmt.Errorf("%w: %T", ErrUnrecognizedExport, doc)
}
