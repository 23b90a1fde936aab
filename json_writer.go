package folio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// jsonObjectWriter helps construct a JSON object with a specific field order.
// Its zero value is ready to use.
type jsonObjectWriter struct {
	bytes.Buffer
	err error
}

// Append adds a new key-value pair to the JSON object. The value is marshaled
// to JSON using `json.Marshal`.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	valBytes, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("failed to marshal value for key %q: %w", key, err)
		return w
	}
	fmt.Fprintf(w, "%q:", key)
	w.Write(valBytes)
	w.WriteString(",")
	return w
}

// Optional appends a key-value pair only if the value is not its type's zero
// value (nil pointers and empty slices included).
func (w *jsonObjectWriter) Optional(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	v := reflect.ValueOf(value)
	if !v.IsValid() || v.IsZero() {
		return w
	}
	if (v.Kind() == reflect.Slice || v.Kind() == reflect.Map) && v.Len() == 0 {
		return w
	}
	return w.Append(key, value)
}

// MarshalJSON finalizes the JSON object construction, wraps the content in
// braces, and returns the complete JSON byte slice.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	content := bytes.TrimSuffix(w.Bytes(), []byte(","))
	final := make([]byte, 0, len(content)+2)
	final = append(final, '{')
	final = append(final, content...)
	final = append(final, '}')
	return final, nil
}

// MarshalJSON writes the cost with its optional date and label omitted when empty.
func (c Cost) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("number", c.Number).
		Append("currency", c.Currency).
		Optional("date", c.Date).
		Optional("label", c.Label)
	return w.MarshalJSON()
}

// header writes the fields shared by every directive.
func (d baseDir) header(w *jsonObjectWriter) *jsonObjectWriter {
	return w.Append("directive", d.Kind).Optional("date", d.Date)
}

// MarshalJSON writes the option in canonical key order.
func (o *Option) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	o.header(&w).Append("name", o.Name).Append("value", o.Value)
	return w.MarshalJSON()
}

// MarshalJSON writes the open directive in canonical key order.
func (o *Open) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	o.header(&w).Append("account", o.Account).Optional("currencies", o.Currencies)
	return w.MarshalJSON()
}

// MarshalJSON writes the close directive in canonical key order.
func (c *Close) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	c.header(&w).Append("account", c.Account)
	return w.MarshalJSON()
}

// MarshalJSON writes the commodity directive in canonical key order.
func (c *Commodity) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	c.header(&w).Append("currency", c.Currency).Optional("name", c.Name)
	return w.MarshalJSON()
}

// MarshalJSON writes the price directive with its amount in two flat fields.
func (p *Price) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	p.header(&w).
		Append("commodity", p.Commodity).
		Append("amount", p.Amount.Number).
		Append("currency", p.Amount.Currency)
	return w.MarshalJSON()
}

// MarshalJSON writes the posting, omitting inferred or absent parts.
func (p Posting) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("account", p.Account).
		Optional("units", p.Units).
		Optional("cost", p.Cost).
		Optional("price", p.Price).
		Optional("flag", p.Flag)
	return w.MarshalJSON()
}

// MarshalJSON writes the transaction in canonical key order.
func (t *Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	t.header(&w).
		Optional("flag", t.Flag).
		Optional("payee", t.Payee).
		Optional("narration", t.Narration).
		Optional("tags", t.Tags).
		Optional("links", t.Links).
		Append("postings", t.Postings)
	return w.MarshalJSON()
}
