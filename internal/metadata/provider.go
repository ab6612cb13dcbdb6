package metadata

// NotAvailable is returned for keys that do not apply to the current
// strategy and configuration combination.
const NotAvailable = ""

// Provider is the named key→value lookup exposing all data the strategies
// and scripts consume. Entries are computed on first access and memoized
// for the life of one calculation. Absent keys resolve to NotAvailable
// rather than failing.
type Provider struct {
	computers map[Key]func() string
	values    map[Key]string
}

// NewProvider creates an empty Provider.
func NewProvider() *Provider {
	return &Provider{
		computers: make(map[Key]func() string),
		values:    make(map[Key]string),
	}
}

// Register binds a key to a compute function invoked lazily on first Get.
func (p *Provider) Register(key Key, compute func() string) {
	p.computers[key] = compute
}

// Set stores a value directly, bypassing lazy computation. Used for values
// only known after the fact, such as the calculated version itself.
func (p *Provider) Set(key Key, value string) {
	p.values[key] = value
}

// Get returns the value for a key, computing and memoizing it on first
// access. Keys that were never registered resolve to (NotAvailable, false).
func (p *Provider) Get(key Key) (string, bool) {
	if v, ok := p.values[key]; ok {
		return v, true
	}
	compute, ok := p.computers[key]
	if !ok {
		return NotAvailable, false
	}
	v := compute()
	p.values[key] = v
	return v, true
}

// Snapshot resolves every registered key into a plain map, suitable for
// binding into a script context.
func (p *Provider) Snapshot() map[string]string {
	out := make(map[string]string, len(p.computers)+len(p.values))
	for key := range p.values {
		v, _ := p.Get(key)
		out[string(key)] = v
	}
	for key := range p.computers {
		v, _ := p.Get(key)
		out[string(key)] = v
	}
	return out
}
