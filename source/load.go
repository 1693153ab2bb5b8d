// Package source reads text to be laid out from HTML fragments and XML
// documents, plain or packed into zip archives.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"github.com/h2non/filetype"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"tflow/archive"
)

// DefaultElement selects text of XML documents.
const DefaultElement = "//body"

// Options control how source is read.
type Options struct {
	// Charset forces IANA character set of the source, empty means detect.
	Charset string
	// NameCodePage decodes non UTF-8 entry names in archives.
	NameCodePage encoding.Encoding
	// Element is etree path of the element whose content is the text of XML
	// documents.
	Element            string
	CollapseWhitespace bool
}

// Document is loaded source text.
type Document struct {
	// Name is path of the source relative to the archive or base file name.
	Name    string
	Path    string
	Charset string
	Text    string
}

// Load reads source from path. Path may continue inside zip archive:
// "book.zip/chapters/one.html".
func Load(ctx context.Context, path string, opts Options, log *zap.Logger) (*Document, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("source")

	data, name, err := read(ctx, path, opts.NameCodePage)
	if err != nil {
		return nil, err
	}

	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		return nil, fmt.Errorf("source (%s) is not a text document: %s", path, kind.MIME.Value)
	}

	doc := &Document{Name: name, Path: path}
	if isXML(name, data) {
		err = doc.decodeXML(data, opts)
	} else {
		err = doc.decodeHTML(data, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to decode source (%s): %w", path, err)
	}

	if opts.CollapseWhitespace {
		doc.Text = strings.Join(strings.Fields(doc.Text), " ")
	}

	log.Debug("Source loaded",
		zap.String("name", doc.Name), zap.String("charset", doc.Charset), zap.Int("bytes", len(data)), zap.Int("text", len(doc.Text)))
	return doc, nil
}

// read resolves path walking its heads until existing file is found, the rest
// of the path is entry name inside archive.
func read(ctx context.Context, src string, cp encoding.Encoding) ([]byte, string, error) {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}
		if fi.Mode().IsDir() {
			return nil, "", fmt.Errorf("source is a directory (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}
		if !fi.Mode().IsRegular() {
			return nil, "", fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			return nil, "", fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			entry := filepath.ToSlash(strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator)))
			if len(entry) == 0 {
				return nil, "", fmt.Errorf("path inside archive (%s) is required", head)
			}
			data, err := archive.ReadFile(head, entry, cp)
			if err != nil {
				return nil, "", fmt.Errorf("unable to read from archive (%s): %w", head, err)
			}
			return data, entry, nil
		}
		if len(tail) != 0 {
			return nil, "", fmt.Errorf("source was not recognized as archive (%s)", head)
		}
		data, err := os.ReadFile(head)
		if err != nil {
			return nil, "", err
		}
		return data, filepath.Base(head), nil
	}
	return nil, "", fmt.Errorf("source was not found (%s)", src)
}

func isArchiveFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}
	// filetype looks at most at 262 leading bytes
	header := make([]byte, 262)
	n, err := io.ReadFull(f, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}
	return filetype.Is(header[:n], "zip"), nil
}

func isXML(name string, data []byte) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xhtml", ".xml", ".fb2":
		return true
	}
	return bytes.HasPrefix(bytes.TrimLeft(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")), " \t\r\n"), []byte("<?xml"))
}

// forced returns decoder for requested character set or nil.
func forced(name string) (encoding.Encoding, string, error) {
	if len(name) == 0 {
		return nil, "", nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, "", fmt.Errorf("unknown character set %q: %w", name, err)
	}
	if enc == nil {
		return nil, "", fmt.Errorf("unsupported character set %q", name)
	}
	canonical, _ := ianaindex.IANA.Name(enc)
	return enc, canonical, nil
}

func (d *Document) decodeHTML(data []byte, opts Options) error {
	enc, name, err := forced(opts.Charset)
	if err != nil {
		return err
	}
	if enc == nil {
		enc, name, _ = charset.DetermineEncoding(data, "text/html")
	}
	d.Charset = name

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return err
	}
	d.Text = string(decoded)
	if containsFold(decoded, "<body") {
		d.Text, err = htmlBody(decoded)
	}
	return err
}

func containsFold(data []byte, s string) bool {
	return bytes.Contains(bytes.ToLower(data), []byte(s))
}

// htmlBody renders content of the body element of complete HTML document.
func htmlBody(data []byte) (string, error) {
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	var body *html.Node
	for n := range root.Descendants() {
		if n.Type == html.ElementNode && n.Data == "body" {
			body = n
			break
		}
	}
	if body == nil {
		return "", errors.New("no body element")
	}

	var buf bytes.Buffer
	for c := range body.ChildNodes() {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func (d *Document) decodeXML(data []byte, opts Options) error {
	enc, name, err := forced(opts.Charset)
	if err != nil {
		return err
	}

	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Permissive:    true,
	}
	if enc != nil {
		if data, err = enc.NewDecoder().Bytes(data); err != nil {
			return err
		}
		// already decoded, ignore declaration in the prolog
		doc.ReadSettings.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
			return input, nil
		}
	}
	if err := doc.ReadFromBytes(data); err != nil {
		return err
	}

	d.Charset = name
	if len(d.Charset) == 0 {
		d.Charset = "utf-8"
		for _, t := range doc.Child {
			if p, ok := t.(*etree.ProcInst); ok && p.Target == "xml" {
				if cs := procInstEncoding(p.Inst); len(cs) > 0 {
					d.Charset = strings.ToLower(cs)
				}
			}
		}
	}

	path := opts.Element
	if len(path) == 0 {
		path = DefaultElement
	}
	compiled, err := etree.CompilePath(path)
	if err != nil {
		return fmt.Errorf("bad element path %q: %w", path, err)
	}
	el := doc.FindElementPath(compiled)
	if el == nil {
		return fmt.Errorf("element %q not found", path)
	}

	inner := etree.NewDocument()
	for _, t := range append([]etree.Token(nil), el.Child...) {
		inner.AddChild(t)
	}
	text, err := inner.WriteToString()
	if err != nil {
		return err
	}
	d.Text = strings.TrimSpace(text)
	return nil
}

// procInstEncoding extracts encoding pseudo attribute of xml declaration.
func procInstEncoding(inst string) string {
	_, rest, ok := strings.Cut(inst, "encoding=")
	if !ok || len(rest) < 2 {
		return ""
	}
	quote := rest[0]
	if quote != '"' && quote != '\'' {
		return ""
	}
	value, _, _ := strings.Cut(rest[1:], string(quote))
	return value
}
