package export

import (
	"html"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
)

const htmlStyle = "body{font-family:system-ui,sans-serif;max-width:960px;margin:2rem auto;color:#1c1917;} " +
	"table{width:100%;border-collapse:collapse;font-size:0.9rem;} " +
	"th,td{border:1px solid #a8a29e;padding:0.35rem 0.5rem;text-align:left;} " +
	"thead th{background:#f1f5f9;}"

// HTML renders the markdown summary of rep as a standalone HTML page.
func HTML(rep *model.Report, company string) (string, error) {
	var content strings.Builder
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(Markdown(rep, company)), &content); err != nil {
		return "", eris.Wrap(err, "export: markdown convert")
	}

	title := company
	if title == "" {
		title = rep.ID
	}
	return "<!doctype html><html><head><meta charset='utf-8'><title>TCA Report: " + html.EscapeString(title) + "</title>" +
		"<style>" + htmlStyle + "</style></head><body>" +
		content.String() +
		"</body></html>", nil
}
