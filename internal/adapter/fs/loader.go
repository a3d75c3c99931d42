package fs

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
	"wordfreq/internal/domain"
)

// Loader reads whole text files. Invalid UTF-8 sequences are dropped.
type Loader struct {
	extractHTML bool
	progress    io.Writer // nil disables the progress bar
	log         logrus.FieldLogger
}

// NewLoader creates a Loader. When extractHTML is set, only the visible
// text of an HTML document is returned. Progress is drawn on progress
// when it is non-nil.
func NewLoader(extractHTML bool, progress io.Writer) *Loader {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &Loader{extractHTML: extractHTML, progress: progress, log: log}
}

// SetLogger assigns the logger used for non-fatal progress bar failures.
func (l *Loader) SetLogger(log logrus.FieldLogger) {
	l.log = log
}

// Load returns the content of path as valid UTF-8.
func (l *Loader) Load(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", domain.ErrInputNotFound, path)
		}
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a regular file", domain.ErrInvalidArgument, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf bytes.Buffer
	buf.Grow(int(info.Size()))

	var dst io.Writer = &buf
	var bar *progressbar.ProgressBar
	var pw *progressWriter
	if l.progress != nil && info.Size() > 0 {
		pw = &progressWriter{w: l.progress}
		bar = progressbar.NewOptions64(info.Size(),
			progressbar.OptionSetWriter(pw),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("Reading"),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(pw)
			}),
		)
		dst = io.MultiWriter(&buf, bar)
	}

	if _, err := io.Copy(dst, f); err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if bar != nil {
		if err := bar.Finish(); err != nil {
			l.log.WithError(err).Debug("progress bar finish failed")
		}
		if pw.err != nil {
			l.log.WithError(pw.err).Debug("progress output failed")
		}
	}

	text := DecodeLossy(buf.Bytes())
	if l.extractHTML {
		return ExtractText(text), nil
	}
	return text, nil
}

// DecodeLossy converts data to a string, dropping invalid UTF-8 sequences.
func DecodeLossy(data []byte) string {
	return strings.ToValidUTF8(string(data), "")
}

// progressWriter keeps a failing progress stream from aborting the read.
// The first write error is kept for logging.
type progressWriter struct {
	w   io.Writer
	err error
}

func (p *progressWriter) Write(b []byte) (int, error) {
	if p.err == nil {
		_, p.err = p.w.Write(b)
	}
	return len(b), nil
}

// blockElements separate words; inline elements such as <b> do not.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"body": true, "br": true, "caption": true, "dd": true, "div": true,
	"dl": true, "dt": true, "fieldset": true, "figcaption": true,
	"figure": true, "footer": true, "form": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "head": true,
	"header": true, "hr": true, "html": true, "li": true, "main": true,
	"nav": true, "ol": true, "option": true, "p": true, "pre": true,
	"section": true, "table": true, "tbody": true, "td": true,
	"tfoot": true, "th": true, "thead": true, "title": true, "tr": true,
	"ul": true,
}

// ExtractText returns the visible text of an HTML document, whitespace
// collapsed. Block-level elements break words; inline markup does not.
func ExtractText(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		// Fallback to string if parsing fails
		return s
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		block := false
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "template":
				return
			}
			block = blockElements[n.Data]
		}
		if block {
			sb.WriteByte('\n')
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			sb.WriteByte('\n')
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(sb.String()), " ")
}
