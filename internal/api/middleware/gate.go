package middleware

import "net/http"

// Gate routes page requests on cookie presence alone:
//
//	cookie  public path  outcome
//	no      no           redirect to login
//	no      yes          allow
//	yes     no           allow
//	yes     yes          redirect to the default page
//
// No signature check happens here. A forged cookie passes the gate and
// then dies in Auth on the route itself; the gate only keeps login pages
// away from logged-in-looking clients and protected pages away from
// clients with no token at all.
type Gate struct {
	publicPaths map[string]bool
	loginPath   string
	defaultPath string
}

func NewGate(publicPaths []string, loginPath, defaultPath string) *Gate {
	paths := make(map[string]bool, len(publicPaths))
	for _, p := range publicPaths {
		paths[p] = true
	}
	return &Gate{
		publicPaths: paths,
		loginPath:   loginPath,
		defaultPath: defaultPath,
	}
}

// Decide returns the redirect target for a request, or "" to allow it.
func (g *Gate) Decide(path string, hasCookie bool) string {
	public := g.publicPaths[path]
	switch {
	case !hasCookie && !public:
		return g.loginPath
	case hasCookie && public:
		return g.defaultPath
	default:
		return ""
	}
}

func (g *Gate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hasCookie := false
		if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
			hasCookie = true
		}

		if target := g.Decide(r.URL.Path, hasCookie); target != "" {
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}
