package server

// Server is the lifecycle seam between main and the HTTP transport that
// serves the route catalog.
//
// RunServer blocks until the process is told to stop; Shutdown drains
// in-flight requests and then releases the listener.
type Server interface {
	RunServer()
	Shutdown()
}
