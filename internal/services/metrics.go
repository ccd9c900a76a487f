// metrics.go
//
// Hierarchical app and store resolution service for the jam-build marketplace
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of jam-build-appstore.
// jam-build-appstore is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// jam-build-appstore is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with jam-build-appstore.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	installsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "appstore",
		Name:      "installs_total",
		Help:      "Install lifecycle transitions by object kind and result.",
	}, []string{"object", "result"})

	cacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "appstore",
		Name:      "cache_requests_total",
		Help:      "Resolver cache lookups by result (hit, miss, error).",
	}, []string{"result"})

	depthClamped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "appstore",
		Name:      "expansion_depth_clamped_total",
		Help:      "Expansion requests whose depth was outside the allowed range.",
	})

	expandDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "appstore",
		Name:      "expand_store_duration_seconds",
		Help:      "Time to materialize a nested store view.",
		Buckets:   prometheus.DefBuckets,
	})
)
