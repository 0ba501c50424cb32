package agmip

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrIncompleteSelection = errors.New("citation needs a model, gcm, rcp and crop")
	ErrUnknownOption       = errors.New("unknown aggregation option")
)

// Category keys a citation reads its selection from.
const (
	ModelKey = "ggcm"
	GCMKey   = "gcm"
	RCPKey   = "rcp"
	CropKey  = "crop"
)

// CitationInfo names the data a citation describes by display label.
type CitationInfo struct {
	Model     string
	GCM       string
	RCP       string
	Crop      string
	StartYear int
	EndYear   int
	Option    string
}

var aggregationPhrases = map[string]string{
	"pr": "%s",
	"yi": "Area weighted, %s yields",
	"st": "Summary statistics for %s yields",
	"wa": "User defined aggregation of %s yields",
}

// NewCitationInfo resolves the selected option values, keyed by category
// key, to their labels.
func NewCitationInfo(cfg *Config, selection map[string]string, start, end int, option string) (CitationInfo, error) {
	label := func(key string) (string, error) {
		v, ok := selection[key]
		if !ok || v == "" {
			return "", fmt.Errorf("%w: no %s selected", ErrIncompleteSelection, key)
		}
		if l, ok := cfg.OptionLabel(key, v); ok {
			return l, nil
		}
		return v, nil
	}

	info := CitationInfo{StartYear: start, EndYear: end, Option: option}
	for _, f := range []struct {
		key string
		dst *string
	}{
		{ModelKey, &info.Model},
		{GCMKey, &info.GCM},
		{RCPKey, &info.RCP},
		{CropKey, &info.Crop},
	} {
		l, err := label(f.key)
		if err != nil {
			return CitationInfo{}, err
		}
		*f.dst = l
	}
	return info, nil
}

// Citation is the sentence users cite the aggregated data with.
func Citation(info CitationInfo) (string, error) {
	phrase, ok := aggregationPhrases[info.Option]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownOption, info.Option)
	}
	crop := info.Crop
	if info.Option != "pr" {
		crop = strings.ToLower(crop)
	}
	return fmt.Sprintf(
		"%s production for the period %d-%d generated by the %s crop model using climate data from the %s GCM "+
			"under representative concentration pathway %s as documented in Rosenzweig et al. (2014). "+
			"Data and modeling protocols are described in Elliott (2014). "+
			"Details of the aggregation procedures are in Villoria et al. (2015).",
		fmt.Sprintf(phrase, crop), info.StartYear, info.EndYear, info.Model, info.GCM, info.RCP,
	), nil
}
