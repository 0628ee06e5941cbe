// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package signal

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"
)

// trustEntry pairs a domain with its authority score.
type trustEntry struct {
	domain string
	score  int
}

// The curated trust table, tiered by source authority. Lookup walks the
// tiers in order and returns the first entry whose domain appears in the
// document URL; entries are ordered slices so lookups stay deterministic
// when a URL matches more than one domain.

// Tier 1 (90-95): government, health, science, top universities,
// fact-checkers, wire services.
var highlyTrusted = []trustEntry{
	{"mayoclinic.org", 95}, {"nih.gov", 95}, {"fda.gov", 95}, {"who.int", 95}, {"cdc.gov", 95},
	{"un.org", 95}, {"nasa.gov", 95}, {"noaa.gov", 95}, {"worldbank.org", 95},
	{"nature.com", 90}, {"nejm.org", 90}, {"jamanetwork.com", 90}, {"bmj.com", 90}, {"thelancet.com", 90},
	{"mit.edu", 95}, {"harvard.edu", 95}, {"stanford.edu", 95}, {"ox.ac.uk", 95}, {"cam.ac.uk", 95},
	{"berkeley.edu", 90}, {"princeton.edu", 90}, {"yale.edu", 90}, {"columbia.edu", 90},
	{"sciencemag.org", 90}, {"pnas.org", 90}, {"ieee.org", 90}, {"researchgate.net", 90},
	{"factcheck.org", 95}, {"snopes.com", 90}, {"politifact.com", 90}, {"fullfact.org", 90},
	{"reuters.com", 95}, {"apnews.com", 95}, {"npr.org", 90},
}

// Tier 2 (70-89): established news, science, and tech publications.
var trusted = []trustEntry{
	{"bbc.com", 85}, {"nytimes.com", 85}, {"theguardian.com", 85}, {"forbes.com", 80},
	{"bloomberg.com", 85}, {"cnbc.com", 85}, {"economist.com", 85}, {"wsj.com", 85}, {"time.com", 80},
	{"sciencedaily.com", 80}, {"wired.com", 80}, {"technologyreview.com", 80},
	{"marketwatch.com", 80}, {"fool.com", 75}, {"investopedia.com", 75}, {"sec.gov", 90},
	{"arxiv.org", 80}, {"psychologytoday.com", 75}, {"scirp.org", 70}, {"nature.scienceopen.com", 80},
	{"khanacademy.org", 85}, {"coursera.org", 80}, {"udacity.com", 80}, {"udemy.com", 75},
}

// Tier 3 (50-69): blogs, open wikis, crowd-sourced and opinionated news.
var moderatelyTrusted = []trustEntry{
	{"wikipedia.org", 70}, {"wikihow.com", 65}, {"stackexchange.com", 65}, {"stackoverflow.com", 65},
	{"medium.com", 60}, {"substack.com", 60}, {"blogspot.com", 55}, {"businessinsider.com", 60},
	{"vox.com", 65}, {"quora.com", 55},
	{"engadget.com", 65}, {"gizmodo.com", 65}, {"slashdot.org", 65}, {"techcrunch.com", 65},
	{"mashable.com", 60}, {"theverge.com", 65},
	{"webmd.com", 65}, {"healthline.com", 65}, {"self.com", 60}, {"shape.com", 60},
}

// Tier 4 (30-49): social media, community content, unverified info.
var lowTrust = []trustEntry{
	{"reddit.com", 45}, {"tiktok.com", 30}, {"twitter.com", 40},
	{"facebook.com", 40}, {"instagram.com", 35}, {"pinterest.com", 35},
	{"fandom.com", 35}, {"wattpad.com", 40}, {"9gag.com", 35}, {"buzzfeednews.com", 45},
	{"gaia.com", 40}, {"mercola.com", 40}, {"sott.net", 30},
}

// Tier 5 (10-29): disinformation, conspiracy, satire, pseudoscience.
var veryLowTrust = []trustEntry{
	{"infowars.com", 15}, {"breitbart.com", 20}, {"theonion.com", 15}, {"clickhole.com", 15},
	{"dailymail.co.uk", 25}, {"naturalnews.com", 20}, {"beforeitsnews.com", 20},
	{"prisonplanet.com", 15}, {"sputniknews.com", 25}, {"rt.com", 25},
}

// trustTiers lists the tiers in lookup order.
var trustTiers = [][]trustEntry{highlyTrusted, trusted, moderatelyTrusted, lowTrust, veryLowTrust}

// DomainTrust scores the document's source authority from the static
// trust table. It performs no I/O and has no failure mode.
type DomainTrust struct {
	// overlay entries are consulted before the built-in tiers. Sorted
	// by domain at construction for deterministic lookup.
	overlay []trustEntry
}

// NewDomainTrust returns a DomainTrust evaluator. overlayPath may name a
// YAML file of domain→score entries that take precedence over the
// built-in table; an empty path means no overlay.
func NewDomainTrust(overlayPath string) (*DomainTrust, error) {
	d := &DomainTrust{}
	if overlayPath == "" {
		return d, nil
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return nil, fmt.Errorf("reading trust overlay %s: %w", overlayPath, err)
	}

	var entries map[string]int
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing trust overlay %s: %w", overlayPath, err)
	}

	for domain, score := range entries {
		if score < 0 || score > 100 {
			return nil, fmt.Errorf("trust overlay %s: score %d for %q out of range [0,100]", overlayPath, score, domain)
		}
		d.overlay = append(d.overlay, trustEntry{domain: domain, score: score})
	}
	sort.Slice(d.overlay, func(i, j int) bool { return d.overlay[i].domain < d.overlay[j].domain })

	return d, nil
}

// Name returns the signal identifier.
func (d *DomainTrust) Name() string { return NameDomainTrust }

// Evaluate returns the trust score for the first matching domain, or
// DefaultTrust for unknown sources. The match is a substring test
// against the URL, mirroring how sources embed their domain anywhere in
// the locator (subdomains, country prefixes).
func (d *DomainTrust) Evaluate(_ context.Context, in Input) int {
	for _, e := range d.overlay {
		if containsDomain(in.URL, e.domain) {
			return e.score
		}
	}
	for _, tier := range trustTiers {
		for _, e := range tier {
			if containsDomain(in.URL, e.domain) {
				return e.score
			}
		}
	}
	return DefaultTrust
}

// containsDomain reports whether url mentions domain.
func containsDomain(url, domain string) bool {
	return domain != "" && strings.Contains(url, domain)
}
