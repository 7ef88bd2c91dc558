package entity

// Problem is one troubleshooting entry. Causes keep the order in which they
// were authored; diagnosis asks about them in that order.
type Problem struct {
	Key         string
	Description string
	Causes      []Cause
}

type Cause struct {
	Key      string
	Question string
	Solution string
}

func (p *Problem) Cause(key string) (Cause, bool) {
	for _, c := range p.Causes {
		if c.Key == key {
			return c, true
		}
	}
	return Cause{}, false
}

func (p *Problem) CauseKeys() []string {
	keys := make([]string, 0, len(p.Causes))
	for _, c := range p.Causes {
		keys = append(keys, c.Key)
	}
	return keys
}
