package router

import "errors"

var (
	ErrNoHandler        = errors.New("router: no handler registered for content type")
	ErrRendererRequired = errors.New("router: template renderer is required")
	ErrSiteRequired     = errors.New("router: site id is required")
)
