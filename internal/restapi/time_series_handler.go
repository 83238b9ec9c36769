package restapi

import (
	"errors"
	"net/http"
	"time"

	"routekit.transitlab.org/internal/models"
	"routekit.transitlab.org/internal/routestats"
)

// timeSeriesHandler returns the bucketed route indicator series. Without a
// dates parameter the series covers one nominal day over all trips; with
// one it stacks the requested service dates.
func (api *RestAPI) timeSeriesHandler(w http.ResponseWriter, r *http.Request) {
	split, err := boolParam(r, "split_directions", false)
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"split_directions": {err.Error()}})
		return
	}
	dates, err := datesParam(r, "dates")
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"dates": {err.Error()}})
		return
	}
	freq, err := freqParam(r, "freq")
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"freq": {err.Error()}})
		return
	}

	api.FeedManager.RLock()
	defer api.FeedManager.RUnlock()

	start := time.Now()
	var series *routestats.TimeSeries
	if dates == nil {
		series, err = routestats.ComputeTimeSeriesBase(api.TripStats, split, freq)
	} else {
		series, err = routestats.ComputeTimeSeries(api.FeedManager.Feed(), api.TripStats, dates, split, freq)
	}
	if err != nil {
		switch {
		case errors.Is(err, routestats.ErrMissingDirections):
			api.validationErrorResponse(w, r, map[string][]string{"split_directions": {err.Error()}})
		case errors.Is(err, routestats.ErrBadFrequency):
			api.validationErrorResponse(w, r, map[string][]string{"freq": {err.Error()}})
		default:
			api.serverErrorResponse(w, r, err)
		}
		return
	}
	if api.Metrics != nil {
		api.Metrics.ObserveComputation("time_series", time.Since(start).Seconds())
	}

	api.sendOK(w, r, models.NewTimeSeriesEntry(series))
}
