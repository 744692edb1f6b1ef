/*
The middleware package defines what a middleware is in switchback and a set of basic middlewares.

The available middlewares are:
  - CORS
  - InjectIPAddress
  - LogRequest
  - ParseJSON
  - RateLimit
  - ReportPanic
  - Tracking

ranger assembles these in a fixed order. To build a chain by hand, the following can be copy-pasted:

	adpts := []middleware.Adapter{
		middleware.ReportPanic(env, responder.Err),
		middleware.Tracking(false),
		middleware.InjectIPAddress(),
		middleware.LogRequest(log),
		middleware.CORS(origin),
		middleware.ParseJSON(middleware.DefaultBodyLimit, responder.Err),
	}
*/
package middleware
