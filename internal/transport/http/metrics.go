package httptransport

import "expvar"

var (
	metricTournamentsCreated   = expvar.NewInt("tournaments_created_total")
	metricRegistrations        = expvar.NewInt("player_registrations_total")
	metricMatchesReported      = expvar.NewInt("matches_reported_total")
	metricTournamentsCompleted = expvar.NewInt("tournaments_completed_total")
	metricDomainErrors         = expvar.NewMap("api_errors_total")

	metricSSEConnectionsTotal  = expvar.NewInt("sse_connections_total")
	metricSSEConnectionsActive = expvar.NewInt("sse_connections_active")
	metricStaticNotFound       = expvar.NewInt("static_not_found_total")
)
