package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

type Platform string

const (
	PlatformCodeforces   Platform = "Codeforces"
	PlatformAtCoder      Platform = "AtCoder"
	PlatformCSES         Platform = "CSES"
	PlatformLeetCode     Platform = "LeetCode"
	PlatformCodeChef     Platform = "CodeChef"
	PlatformCodingNinjas Platform = "CodingNinjas"
	PlatformHackerRank   Platform = "HackerRank"
	PlatformOther        Platform = "Other"
)

// JudgeTrackable reports whether solved state for the platform comes from the
// judge's submission history rather than from manual toggles.
func (p Platform) JudgeTrackable() bool {
	return p == PlatformCodeforces
}

// Problem is one entry of the curated problem list file.
// Rating, ContestID and Index are always written, as null when unknown.
type Problem struct {
	Title     string   `json:"title"`
	Link      string   `json:"link"`
	Category  string   `json:"category,omitempty"`
	Video     string   `json:"video,omitempty"`
	Platform  Platform `json:"platform"`
	Rating    *int     `json:"rating"`
	ContestID *int     `json:"contestId"`
	Index     *string  `json:"index"`

	// Fields of the source record this type does not model; kept so a rewrite
	// of the list file does not drop them.
	Extra map[string]json.RawMessage `json:"-"`

	extraOrder []string                   // source order of Extra keys
	blank      map[string]json.RawMessage // category/video given as null or ""
}

var problemFields = map[string]struct{}{
	"title": {}, "link": {}, "category": {}, "video": {},
	"platform": {}, "rating": {}, "contestId": {}, "index": {},
}

type problemAlias Problem

func (p *Problem) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var alias problemAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	members, err := objectMembers(data)
	if err != nil {
		return err
	}

	*p = Problem(alias)
	p.Extra, p.extraOrder, p.blank = nil, nil, nil
	for _, m := range members {
		switch m.name {
		case "category", "video":
			if v := bytes.TrimSpace(m.value); bytes.Equal(v, []byte("null")) || bytes.Equal(v, []byte(`""`)) {
				if p.blank == nil {
					p.blank = make(map[string]json.RawMessage)
				}
				p.blank[m.name] = json.RawMessage(v)
			}
			continue
		}
		if _, known := problemFields[m.name]; known {
			continue
		}
		if p.Extra == nil {
			p.Extra = make(map[string]json.RawMessage)
		}
		if _, dup := p.Extra[m.name]; !dup {
			p.extraOrder = append(p.extraOrder, m.name)
		}
		p.Extra[m.name] = m.value
	}
	return nil
}

func (p Problem) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	n := 0
	write := func(name string, value []byte) {
		if n > 0 {
			buf.WriteByte(',')
		}
		n++
		key, _ := encodeJSON(name)
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	writeValue := func(name string, v any) error {
		value, err := encodeJSON(v)
		if err != nil {
			return err
		}
		write(name, value)
		return nil
	}
	writeOptional := func(name, v string) error {
		if v != "" {
			return writeValue(name, v)
		}
		if raw, ok := p.blank[name]; ok {
			write(name, raw)
		}
		return nil
	}

	if err := writeValue("title", p.Title); err != nil {
		return nil, err
	}
	if err := writeValue("link", p.Link); err != nil {
		return nil, err
	}
	if err := writeOptional("category", p.Category); err != nil {
		return nil, err
	}
	if err := writeOptional("video", p.Video); err != nil {
		return nil, err
	}
	if err := writeValue("platform", p.Platform); err != nil {
		return nil, err
	}
	if err := writeValue("rating", p.Rating); err != nil {
		return nil, err
	}
	if err := writeValue("contestId", p.ContestID); err != nil {
		return nil, err
	}
	if err := writeValue("index", p.Index); err != nil {
		return nil, err
	}
	for _, k := range p.extraKeys() {
		write(k, p.Extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// extraKeys lists Extra in source order; keys added after decoding follow,
// sorted.
func (p Problem) extraKeys() []string {
	keys := make([]string, 0, len(p.Extra))
	listed := make(map[string]bool, len(p.extraOrder))
	for _, k := range p.extraOrder {
		if _, ok := p.Extra[k]; ok && !listed[k] {
			listed[k] = true
			keys = append(keys, k)
		}
	}
	var added []string
	for k := range p.Extra {
		if _, known := problemFields[k]; !known && !listed[k] {
			added = append(added, k)
		}
	}
	sort.Strings(added)
	return append(keys, added...)
}

type member struct {
	name  string
	value json.RawMessage
}

// objectMembers returns the members of a JSON object in source order.
func objectMembers(data []byte) ([]member, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("problem must be a JSON object")
	}
	var members []member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		members = append(members, member{name: name, value: value})
	}
	return members, nil
}

func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// mergeJSON concatenates the members of two values that marshal to JSON objects.
func mergeJSON(a, b any) ([]byte, error) {
	left, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	right, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	if len(right) <= 2 {
		return left, nil
	}
	if len(left) <= 2 {
		return right, nil
	}
	out := append(left[:len(left)-1:len(left)-1], ',')
	return append(out, right[1:]...), nil
}

// HasJudgeID reports whether the problem carries a Codeforces contest id and index.
func (p Problem) HasJudgeID() bool {
	return p.ContestID != nil && p.Index != nil
}
