// Package http contains the chi HTTP handlers for the dashboard API. The
// handlers translate query parameters into domain filter values, delegate
// to the service layer, and render JSON envelopes or RFC 7807 problem
// documents.
package http
