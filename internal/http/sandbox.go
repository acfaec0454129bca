package http

import (
	"html/template"
	"net/http"

	"github.com/davidbz/gamehost/internal/domain"
	"github.com/davidbz/gamehost/internal/observability"
)

const sandboxGateway = "sandbox"

var sandboxPage = template.Must(template.New("sandbox").Parse(`<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>Sandbox payment</title></head>
<body>
<h1>Sandbox payment</h1>
<p>Session <code>{{.ID}}</code></p>
<p>Amount due: <strong>{{.Display}}</strong></p>
<p>Expires {{.ExpiresAt.Format "2006-01-02 15:04 MST"}}</p>
<p>This is the sandbox gateway. No card is charged.</p>
</body>
</html>
`))

type sandboxPageData struct {
	*domain.CheckoutSession
	Display string
}

// HandleSandboxPage stands in for the hosted payment page of sandbox sessions.
func (h *Handler) HandleSandboxPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, err := h.checkout.ResolveSession(ctx, r.PathValue("id"))
	if err != nil || session.Gateway != sandboxGateway {
		http.NotFound(w, r)
		return
	}

	quote := domain.PriceQuote{
		AmountMinorUnits: session.AmountMinorUnits,
		Currency:         h.checkout.Rules().Currency,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := sandboxPage.Execute(w, sandboxPageData{CheckoutSession: session, Display: quote.Display()}); err != nil {
		observability.FromContext(ctx).Warn("failed to render sandbox page", observability.Error(err))
	}
}
