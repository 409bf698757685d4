package xccdf

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/net/html/charset"
)

const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

// entityDecl matches internal general entity declarations in a DOCTYPE subset.
var entityDecl = regexp.MustCompile(`<!ENTITY\s+([^\s%"'>]+)\s+(?:"([^"]*)"|'([^']*)')\s*>`)

// element tracks one open element while walking the document.
type element struct {
	name     xml.Name
	rule     int // index of the control this rule-result produced, -1 otherwise
	status   int // index of the control whose status this result element holds, -1 otherwise
	children int
	bound    []string // namespace URIs declared on this element
}

// Parse converts an XCCDF result document into control records.
//
// Malformed XML is reported through ParsedResult.Error rather than returned as an
// error. Documents in neither XCCDF namespace parse successfully with no controls.
// An empty result element yields an empty status, not StatusUnknown.
func Parse(content string) ParsedResult {
	controls, err := parseRuleResults(strings.NewReader(strings.TrimPrefix(content, "\ufeff")))
	if err != nil {
		return ParsedResult{
			Controls: []ControlRecord{},
			Error:    fmt.Sprintf("Failed to parse XML: %v", err),
		}
	}

	return ParsedResult{
		Controls: controls,
		Total:    len(controls),
		Parsed:   true,
	}
}

// ParseReader reads r fully and parses it. Only read failures are returned as errors.
func ParseReader(r io.Reader) (ParsedResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ParsedResult{}, fmt.Errorf("failed to read scan result: %w", err)
	}
	return Parse(string(data)), nil
}

// ParseFile reads and parses the scan result at path.
func ParseFile(path string) (ParsedResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ParsedResult{}, fmt.Errorf("failed to read scan result %s: %w", path, err)
	}
	return Parse(string(data)), nil
}

func parseRuleResults(r io.Reader) ([]ControlRecord, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var (
		controls  = []ControlRecord{}
		hasResult []bool
		stack     []*element
		ns        string
		rootSeen  bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{name: t.Name, rule: -1, status: -1}
			if err := checkNames(t, el, stack); err != nil {
				return nil, err
			}

			if len(stack) == 0 {
				if rootSeen {
					return nil, errors.New("junk after document element")
				}
				rootSeen = true
				ns = NamespaceV12
				if t.Name.Space == NamespaceV11 {
					ns = NamespaceV11
				}
				stack = append(stack, el)
				continue
			}

			parent := stack[len(stack)-1]
			parent.children++

			switch {
			case t.Name.Space == ns && t.Name.Local == "rule-result":
				idref := attr(t, "idref")
				severity := ExtractSeverity(idref, attr(t, "severity"))
				controls = append(controls, ControlRecord{
					ControlID: idref,
					Status:    StatusUnknown,
					Severity:  severity,
					Category:  SeverityToCategory(severity),
				})
				hasResult = append(hasResult, false)
				el.rule = len(controls) - 1
			case t.Name.Space == ns && t.Name.Local == "result" && parent.rule >= 0 && !hasResult[parent.rule]:
				hasResult[parent.rule] = true
				controls[parent.rule].Status = ""
				el.status = parent.rule
			}

			stack = append(stack, el)

		case xml.Directive:
			if !rootSeen {
				declareEntities(dec, t)
			}

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(t)) > 0 {
					return nil, errors.New("text outside document element")
				}
				continue
			}
			// Only text preceding the first child counts toward the status.
			top := stack[len(stack)-1]
			if top.status >= 0 && top.children == 0 {
				controls[top.status].Status += Status(t)
			}
		}
	}

	if !rootSeen {
		return nil, errors.New("no element found")
	}

	return controls, nil
}

// checkNames rejects duplicate attributes and prefixes with no namespace in scope.
// It records the namespaces el declares.
func checkNames(t xml.StartElement, el *element, stack []*element) error {
	seen := make(map[xml.Name]bool, len(t.Attr))
	for _, a := range t.Attr {
		if seen[a.Name] {
			return fmt.Errorf("duplicate attribute %q on <%s>", a.Name.Local, t.Name.Local)
		}
		seen[a.Name] = true

		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			el.bound = append(el.bound, a.Value)
		}
	}

	if !inScope(t.Name.Space, el, stack) {
		return fmt.Errorf("unbound prefix %q on <%s>", t.Name.Space, t.Name.Local)
	}
	for _, a := range t.Attr {
		if a.Name.Space == "xmlns" {
			continue
		}
		if !inScope(a.Name.Space, el, stack) {
			return fmt.Errorf("unbound prefix %q on attribute %q", a.Name.Space, a.Name.Local)
		}
	}
	return nil
}

// inScope reports whether space is empty or a namespace declared on el or an ancestor.
// The decoder leaves unresolved prefixes in Name.Space.
func inScope(space string, el *element, stack []*element) bool {
	if space == "" || space == xmlNamespace {
		return true
	}
	for _, uri := range el.bound {
		if uri == space {
			return true
		}
	}
	for i := len(stack) - 1; i >= 0; i-- {
		for _, uri := range stack[i].bound {
			if uri == space {
				return true
			}
		}
	}
	return false
}

// declareEntities registers the internal entities of a DOCTYPE with the decoder.
// Values are used literally. The first declaration of a name wins.
func declareEntities(dec *xml.Decoder, d xml.Directive) {
	if !bytes.HasPrefix(d, []byte("DOCTYPE")) {
		return
	}
	for _, m := range entityDecl.FindAllSubmatch(d, -1) {
		if dec.Entity == nil {
			dec.Entity = make(map[string]string)
		}
		name := string(m[1])
		if _, ok := dec.Entity[name]; ok {
			continue
		}
		value := m[2]
		if value == nil {
			value = m[3]
		}
		dec.Entity[name] = string(value)
	}
}

// attr returns the value of the un-namespaced attribute name, or "".
func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
