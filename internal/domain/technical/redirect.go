package technical

// RedirectHop is one response in a redirect chain.
type RedirectHop struct {
	URL        string `json:"url"`
	StatusCode int    `json:"statusCode"`
}

// RedirectChain is the sequence of redirects from one URL to its final
// destination.
type RedirectChain struct {
	From   string        `json:"from"`
	To     string        `json:"to"`
	Hops   []RedirectHop `json:"hops"`
	Length int           `json:"length"`
	IsLoop bool          `json:"isLoop"`
}

// MaxRedirectHops is the chain length above which a chain is reported.
const MaxRedirectHops = 3

// NewRedirectChain builds a chain and detects loops. A chain loops when a
// URL is visited twice, or when it ends where it started. A first hop
// that repeats from is the origin response and is dropped.
func NewRedirectChain(from, to string, hops []RedirectHop) RedirectChain {
	if from != "" && len(hops) > 0 && hops[0].URL == from {
		hops = hops[1:]
	}
	if hops == nil {
		hops = []RedirectHop{}
	}

	seen := make(map[string]bool, len(hops)+1)
	loop := false
	if from != "" {
		seen[from] = true
	}
	for _, hop := range hops {
		if hop.URL == "" {
			continue
		}
		if seen[hop.URL] {
			loop = true
		}
		seen[hop.URL] = true
	}
	if to == "" && len(hops) > 0 {
		to = hops[len(hops)-1].URL
	}
	if from != "" && from == to && len(hops) > 0 {
		loop = true
	}

	return RedirectChain{
		From:   from,
		To:     to,
		Hops:   hops,
		Length: len(hops),
		IsLoop: loop,
	}
}

// TooLong reports whether the chain exceeds MaxRedirectHops.
func (c RedirectChain) TooLong() bool {
	return c.Length > MaxRedirectHops
}
