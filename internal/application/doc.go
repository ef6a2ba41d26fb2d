// Package application provides application initialization and dependency wiring.
// It builds rate storage (optionally seeded from a YAML rate file), the
// warehouse directory, the quote calculator, handlers, routers and the HTTP
// server, keeping the main package focused on CLI parsing and orchestration.
package application
