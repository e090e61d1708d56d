// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package uistate

import (
	dto "github.com/prometheus/client_model/go"
)

var (
	SplitIntoComponents = splitIntoComponents
	SanitiseHash        = sanitiseHash
	CompactID           = compactID
)

// DispatchDurationSum returns the total time spent dispatching.
func DispatchDurationSum(c *Collector) float64 {
	var m dto.Metric
	if err := c.dispatchDuration.Write(&m); err != nil {
		return -1
	}
	return m.GetHistogram().GetSampleSum()
}
