// Package templates computes ordered template candidate lists. The renderer
// collaborator tries candidates in order and uses the first that exists; no
// existence checks happen here.
package templates

import (
	"github.com/goliatone/go-publish/placements"
)

// Fields are the context attributes a candidate list is derived from. Empty
// strings mean "absent"; AppLabel and ModelLabel only take effect together.
type Fields struct {
	Slug         string
	CategoryPath string
	AppLabel     string
	ModelLabel   string
}

// Candidates returns template names most specific first, in this exact
// order, duplicates preserved:
//
//	page/category/<category>/content_type/<app>.<model>/<slug>/<name>
//	page/category/<category>/content_type/<app>.<model>/<name>
//	page/category/<category>/<name>
//	page/content_type/<app>.<model>/<name>
//	page/<name>
func Candidates(name string, f Fields) []string {
	out := make([]string, 0, 5)
	typed := f.AppLabel != "" && f.ModelLabel != ""

	if f.CategoryPath != "" {
		if typed {
			if f.Slug != "" {
				out = append(out, "page/category/"+f.CategoryPath+"/content_type/"+f.AppLabel+"."+f.ModelLabel+"/"+f.Slug+"/"+name)
			}
			out = append(out, "page/category/"+f.CategoryPath+"/content_type/"+f.AppLabel+"."+f.ModelLabel+"/"+name)
		}
		out = append(out, "page/category/"+f.CategoryPath+"/"+name)
	}
	if typed {
		out = append(out, "page/content_type/"+f.AppLabel+"."+f.ModelLabel+"/"+name)
	}
	out = append(out, "page/"+name)
	return out
}

// CandidatesForPlacement fills the fields missing from f out of the resolved
// placement — its slug, its category's display path and its publishable's
// content-type labels — so detail views need not repeat what the placement
// already carries.
func CandidatesForPlacement(name string, p *placements.Placement, f Fields) []string {
	if p != nil {
		if f.Slug == "" {
			f.Slug = p.Slug
		}
		if f.CategoryPath == "" && p.Category != nil {
			f.CategoryPath = p.Category.Path
		}
		if p.Publishable != nil && p.Publishable.Type != nil {
			if f.AppLabel == "" {
				f.AppLabel = p.Publishable.Type.AppLabel
			}
			if f.ModelLabel == "" {
				f.ModelLabel = p.Publishable.Type.Model
			}
		}
	}
	return Candidates(name, f)
}
