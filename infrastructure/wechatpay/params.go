package wechatpay

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"encoding/xml"
	"io"
	"sort"
	"strings"
)

// Params is one flat <xml> document of the v2 API.
type Params map[string]string

// MarshalXML writes <xml><k>v</k>...</xml> with keys in sorted order.
func (p Params) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: xml.Name{Local: "xml"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, k := range p.sortedKeys() {
		if err := e.EncodeElement(p[k], xml.StartElement{Name: xml.Name{Local: k}}); err != nil {
			return err
		}
	}
	if err := e.EncodeToken(start.End()); err != nil {
		return err
	}
	return e.Flush()
}

// UnmarshalXML reads every child element of the root as a string value.
func (p *Params) UnmarshalXML(d *xml.Decoder, _ xml.StartElement) error {
	if *p == nil {
		*p = Params{}
	}
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var value string
			if err := d.DecodeElement(&value, &t); err != nil {
				return err
			}
			(*p)[t.Name.Local] = value
		case xml.EndElement:
			return nil
		}
	}
}

func (p Params) sortedKeys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Sign is the MD5 signature: non-empty pairs except sign, sorted by key,
// joined as k=v&..., then &key=<api key>, upper-case hex.
func Sign(p Params, apiKey string) string {
	var b strings.Builder
	for _, k := range p.sortedKeys() {
		v := p[k]
		if k == "sign" || v == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(v)
	}
	b.WriteString("&key=")
	b.WriteString(apiKey)

	sum := md5.Sum([]byte(b.String()))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// Verify checks the sign field against the other params.
func Verify(p Params, apiKey string) bool {
	sign, ok := p["sign"]
	if !ok || sign == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(strings.ToUpper(sign)), []byte(Sign(p, apiKey))) == 1
}

func encode(p Params) ([]byte, error) {
	return xml.Marshal(p)
}

func decode(data []byte) (Params, error) {
	p := Params{}
	if err := xml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return p, nil
}
