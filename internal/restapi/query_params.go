package restapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"routekit.transitlab.org/internal/feed"
	"routekit.transitlab.org/internal/routestats"
)

// boolParam parses a query flag ("true"/"false"/"1"/"0"); absent means
// defaultValue.
func boolParam(r *http.Request, name string, defaultValue bool) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("must be a boolean, got %q", raw)
	}
	return v, nil
}

// datesParam parses a comma-separated list of YYYYMMDD dates. Absent or
// empty means nil (callers default to the whole feed calendar).
func datesParam(r *http.Request, name string) ([]string, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	var dates []string
	for _, d := range strings.Split(raw, ",") {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		if _, err := feed.ParseDate(d); err != nil {
			return nil, fmt.Errorf("%q is not a YYYYMMDD date", d)
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// freqParam parses a Go duration (e.g. "1h", "30m"). Absent means one hour.
func freqParam(r *http.Request, name string) (time.Duration, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Hour, nil
	}
	freq, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%q is not a duration", raw)
	}
	return freq, nil
}

// idsParam parses a comma-separated route id list. Absent means nil (all
// routes).
func idsParam(r *http.Request, name string) []string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// floatParam parses a required float query parameter.
func floatParam(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("is required")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("must be a number, got %q", raw)
	}
	return v, nil
}

// statsOptions assembles aggregation options from the query plus the
// configured headway window.
func (api *RestAPI) statsOptions(r *http.Request) (routestats.Options, map[string][]string) {
	fieldErrors := map[string][]string{}
	opts := routestats.Options{}

	split, err := boolParam(r, "split_directions", false)
	if err != nil {
		fieldErrors["split_directions"] = []string{err.Error()}
	}
	opts.SplitDirections = split

	if api.Config.HeadwayStart != "" {
		if sec, err := feed.ParseTimeOfDay(api.Config.HeadwayStart); err == nil {
			opts.HeadwayStartSec = sec
		}
	}
	if api.Config.HeadwayEnd != "" {
		if sec, err := feed.ParseTimeOfDay(api.Config.HeadwayEnd); err == nil {
			opts.HeadwayEndSec = sec
		}
	}

	if len(fieldErrors) == 0 {
		return opts, nil
	}
	return opts, fieldErrors
}
