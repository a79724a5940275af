package interfaces

// TemplateRenderer renders the first existing template from an ordered
// candidate list. Template storage, existence checks and the template
// language are the renderer's concern; the engine only supplies names in
// most-specific-first order plus the data payload.
type TemplateRenderer interface {
	Render(candidates []string, data any) (string, error)
}
