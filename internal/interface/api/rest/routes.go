package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// auth
	RouteAuth   = RouteApiV1 + "/auth"
	RouteSignup = RouteAuth + "/signup"
	RouteLogin  = RouteAuth + "/login"

	// files
	RouteFiles        = RouteApiV1 + "/files"
	RouteFileUpload   = RouteFiles + "/upload"
	RouteMyFiles      = RouteFiles + "/my-files"
	RouteFileSearch   = RouteFiles + "/search"
	RouteSharedWithMe = RouteFiles + "/shared-with-me"
	RouteFileShare    = RouteFiles + "/:file_id/share"
	RouteFileDownload = RouteFiles + "/:file_id/download"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
