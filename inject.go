package i18n

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"regexp"
	"sort"
)

// Payload is the wire representation embedded in server rendered HTML and
// read back by the client during hydration.
type Payload struct {
	Locale   string            `json:"locale"`
	Messages map[string]string `json:"messages"`
}

// NewPayload snapshots a dictionary into its wire form
func NewPayload(dict *Dictionary) Payload {
	payload := Payload{Messages: map[string]string{}}
	if dict == nil {
		return payload
	}

	payload.Locale = dict.Locale
	for key, value := range dict.Entries {
		payload.Messages[key] = value
	}
	return payload
}

// DecodePayload reconstructs a Payload from its serialized form, the
// operation the client side consumer performs after page load.
func DecodePayload(data []byte) (Payload, error) {
	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return Payload{}, fmt.Errorf("i18n: decode payload: %w", err)
	}
	if payload.Messages == nil {
		payload.Messages = map[string]string{}
	}
	return payload, nil
}

var (
	elementIDPattern  = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)
	jsIdentifier      = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
	errBadElementID   = errors.New("i18n: injector element id must be a valid html id")
	errBadGlobalName  = errors.New("i18n: injector global must be a valid identifier")
	errNilPayloadJSON = errors.New("i18n: payload serialized to empty output")
)

// DefaultElementID is the id of the emitted script element unless overridden.
const DefaultElementID = "i18n-payload"

// Injector serializes a payload into HTML fragments. Emission is
// deterministic: the same payload always yields byte identical output.
// Placement ahead of the hydration script is the host's responsibility.
type Injector struct {
	elementID string
}

// InjectorOption mutates an Injector during construction
type InjectorOption func(*Injector) error

// WithElementID overrides the id attribute of the emitted script element
func WithElementID(id string) InjectorOption {
	return func(i *Injector) error {
		if !elementIDPattern.MatchString(id) {
			return errBadElementID
		}
		i.elementID = id
		return nil
	}
}

func NewInjector(opts ...InjectorOption) (*Injector, error) {
	injector := &Injector{elementID: DefaultElementID}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(injector); err != nil {
			return nil, err
		}
	}

	return injector, nil
}

// ScriptTag renders the payload as a JSON script element:
//
//	<script type="application/json" id="i18n-payload">{…}</script>
//
// The client reads it with document.getElementById(...).textContent.
func (i *Injector) ScriptTag(payload Payload) (template.HTML, error) {
	data, err := marshalPayload(payload)
	if err != nil {
		return "", err
	}

	tag := fmt.Sprintf(`<script type="application/json" id=%q>%s</script>`, i.id(), data)
	return template.HTML(tag), nil
}

// InlineScript renders the payload as a global assignment:
//
//	<script>window.__I18N__ = {…};</script>
//
// for consumers that expect a global instead of a JSON element.
func (i *Injector) InlineScript(global string, payload Payload) (template.HTML, error) {
	if !jsIdentifier.MatchString(global) {
		return "", errBadGlobalName
	}

	data, err := marshalPayload(payload)
	if err != nil {
		return "", err
	}

	tag := fmt.Sprintf(`<script>window.%s = %s;</script>`, global, data)
	return template.HTML(tag), nil
}

// WriteScriptTag emits the script element straight into the response writer.
func (i *Injector) WriteScriptTag(w io.Writer, payload Payload) error {
	tag, err := i.ScriptTag(payload)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, string(tag))
	return err
}

func (i *Injector) id() string {
	if i == nil || i.elementID == "" {
		return DefaultElementID
	}
	return i.elementID
}

// marshalPayload produces deterministic, script safe JSON. encoding/json
// escapes <, > and & so the output cannot terminate the surrounding
// <script> element early, and map keys marshal in sorted order.
func marshalPayload(payload Payload) ([]byte, error) {
	if payload.Messages == nil {
		payload.Messages = map[string]string{}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("i18n: encode payload: %w", err)
	}
	if len(data) == 0 {
		return nil, errNilPayloadJSON
	}
	return data, nil
}

// SortedMessageKeys exposes the payload's key order as serialized, mainly
// for diffing exported chunks.
func (p Payload) SortedMessageKeys() []string {
	if len(p.Messages) == 0 {
		return nil
	}

	keys := make([]string, 0, len(p.Messages))
	for key := range p.Messages {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
