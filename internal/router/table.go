package router

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
)

// NotFoundPage is the document served when no route matches.
const NotFoundPage = `<!DOCTYPE html>
<html lang="ru">
<head>
<meta charset="UTF-8">
<title>Страница не найдена - Kringe-Music</title>
</head>
<body>
<h1>404</h1>
<p>Страница не найдена - Kringe-Music</p>
<p><a href="/">На главную</a></p>
</body>
</html>
`

// HandlerFunc handles a matched route. params holds the values of the
// pattern's {name} segments in declaration order.
type HandlerFunc func(c echo.Context, params []string) error

type segment struct {
	literal string
	// param is set for {name} segments
	param string
}

type route struct {
	pattern  string
	segments []segment
	names    []string
	handler  HandlerFunc
}

// Table is an ordered list of routes. Routes are registered once at
// startup and matched by a linear scan, first registered first.
type Table struct {
	routes []route
}

func NewTable() *Table {
	return &Table{}
}

// Register appends a route. Patterns are "/"-separated; a segment written
// as {name} matches any single non-empty segment. Overlapping patterns are
// not detected: the earlier one wins.
func (t *Table) Register(pattern string, handler HandlerFunc) {
	r := route{pattern: pattern, handler: handler}
	for _, part := range split(pattern) {
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			name := part[1 : len(part)-1]
			r.segments = append(r.segments, segment{param: name})
			r.names = append(r.names, name)
			continue
		}
		r.segments = append(r.segments, segment{literal: part})
	}
	t.routes = append(t.routes, r)
}

// Match finds the route for path, given in its escaped form. The query
// string is ignored and a missing leading slash is added. Segments are
// split before unescaping, so "a%2Fb" stays one segment and is bound as
// "a/b".
func (t *Table) Match(path string) (HandlerFunc, []string, []string, bool) {
	parts := split(path)
	for i, part := range parts {
		if unescaped, err := url.PathUnescape(part); err == nil {
			parts[i] = unescaped
		}
	}

	for _, r := range t.routes {
		if len(r.segments) != len(parts) {
			continue
		}

		params, ok := r.match(parts)
		if ok {
			return r.handler, r.names, params, true
		}
	}
	return nil, nil, nil, false
}

func (r route) match(parts []string) ([]string, bool) {
	var params []string
	for i, seg := range r.segments {
		if seg.param != "" {
			if parts[i] == "" {
				return nil, false
			}
			params = append(params, parts[i])
			continue
		}
		if seg.literal != parts[i] {
			return nil, false
		}
	}
	return params, true
}

// Dispatch is mounted as echo's catch-all. It calls the matched handler
// exactly once, with the parameters also exposed through c.Param.
func (t *Table) Dispatch(c echo.Context) error {
	handler, names, params, ok := t.Match(c.Request().URL.EscapedPath())
	if !ok {
		return c.HTML(http.StatusNotFound, NotFoundPage)
	}

	c.SetParamNames(names...)
	c.SetParamValues(params...)
	return handler(c, params)
}

// split normalizes path and returns its segments. "/" has one empty
// segment, so it only matches the root pattern.
func split(path string) []string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.Split(path[1:], "/")
}
