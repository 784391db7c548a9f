package change

import "github.com/texere-rope/corestate/pkg/text"

// ToJSON returns the wire form of cs: a plain integer for an unchanged
// run, a single-element array for a deletion, or [length, ...lines] for a
// replacement, where lines is the inserted text's own ToJSON.
func (cs ChangeSet) ToJSON() []interface{} {
	out := make([]interface{}, 0, len(cs.sections)/2)
	for i := 0; i < len(cs.sections); i += 2 {
		length := cs.sections[i]
		insv := cs.sections[i+1]
		switch {
		case insv == -1:
			out = append(out, length)
		case insv == 0:
			out = append(out, []interface{}{length})
		default:
			lines := cs.inserted[i/2].ToJSON()
			entry := make([]interface{}, 0, 1+len(lines))
			entry = append(entry, length)
			for _, l := range lines {
				entry = append(entry, l)
			}
			out = append(out, entry)
		}
	}
	return out
}

// FromJSON rebuilds a ChangeSet from the array ToJSON produced.
func FromJSON(data []interface{}) (ChangeSet, error) {
	sb := &sectionBuilder{}
	for _, entry := range data {
		switch v := entry.(type) {
		case int:
			sb.add(v, -1, text.Text{})
		case float64:
			sb.add(int(v), -1, text.Text{})
		case []interface{}:
			if len(v) == 0 {
				return ChangeSet{}, errMalformedJSON
			}
			length, ok := asInt(v[0])
			if !ok {
				return ChangeSet{}, errMalformedJSON
			}
			if len(v) == 1 {
				sb.add(length, 0, text.Text{})
				continue
			}
			lines := make([]string, 0, len(v)-1)
			for _, s := range v[1:] {
				str, ok := s.(string)
				if !ok {
					return ChangeSet{}, errMalformedJSON
				}
				lines = append(lines, str)
			}
			t, err := text.Of(lines)
			if err != nil {
				return ChangeSet{}, err
			}
			sb.add(length, t.Length(), t)
		default:
			return ChangeSet{}, errMalformedJSON
		}
	}
	return ChangeSet{ChangeDesc{sections: sb.sections}, sb.inserted}, nil
}

func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
