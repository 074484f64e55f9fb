package extract

import (
	"strings"
	"testing"
)

func TestFromHTML_PrefersMainOverBody(t *testing.T) {
	html := `<!doctype html>
    <html>
      <head><title>Backend Engineer - Acme</title></head>
      <body>
        <nav>Careers home</nav>
        <main>
          <h1>Backend Engineer</h1>
          <p>We are hiring a backend engineer to build ingestion pipelines.</p>
        </main>
        <footer>Copyright Acme</footer>
      </body>
    </html>`

	doc := FromHTML([]byte(html))
	if doc.Title != "Backend Engineer - Acme" {
		t.Fatalf("title = %q", doc.Title)
	}
	if !strings.Contains(doc.Text, "Backend Engineer") {
		t.Fatalf("expected heading in text")
	}
	if !strings.Contains(doc.Text, "ingestion pipelines") {
		t.Fatalf("expected paragraph in text")
	}
	if strings.Contains(doc.Text, "Careers home") {
		t.Fatalf("nav text leaked into content")
	}
	if strings.Contains(doc.Text, "Copyright Acme") {
		t.Fatalf("footer text leaked into content")
	}
}

func TestFromHTML_FallbackToLargestDiv(t *testing.T) {
	long := strings.Repeat("The role involves building distributed crawlers. ", 10)
	html := `<!doctype html>
    <html>
      <head><title>No Landmarks</title></head>
      <body>
        <div class="sidebar">Short sidebar text</div>
        <div class="posting">` + long + `</div>
      </body>
    </html>`

	doc := FromHTML([]byte(html))
	if !strings.Contains(doc.Text, "distributed crawlers") {
		t.Fatalf("expected largest div content, got %q", doc.Text)
	}
	if strings.Contains(doc.Text, "Short sidebar text") {
		t.Fatalf("sidebar should not win content selection")
	}
}

func TestFromHTML_FallbackToBody(t *testing.T) {
	html := `<!doctype html>
    <html>
      <head><title>No Main</title></head>
      <body>
        <h2>Body Heading</h2>
        <p>Body paragraph</p>
      </body>
    </html>`

	doc := FromHTML([]byte(html))
	if doc.Title != "No Main" {
		t.Fatalf("title = %q", doc.Title)
	}
	if !strings.Contains(doc.Text, "Body Heading") || !strings.Contains(doc.Text, "Body paragraph") {
		t.Fatalf("expected body content, got %q", doc.Text)
	}
}

func TestFromHTML_SiteName(t *testing.T) {
	html := `<!doctype html>
    <html>
      <head>
        <title>Engineer</title>
        <meta property="og:site_name" content="Acme Careers">
      </head>
      <body><main><p>Role description text for the posting.</p></main></body>
    </html>`

	doc := FromHTML([]byte(html))
	if doc.SiteName != "Acme Careers" {
		t.Fatalf("site name = %q", doc.SiteName)
	}
}

func TestFromHTML_SkipsScriptsAndConsentBanners(t *testing.T) {
	html := `<!doctype html>
    <html>
      <head><title>T</title></head>
      <body>
        <main>
          <div class="cookie-consent">We use cookies</div>
          <script>var tracking = true;</script>
          <p>Visible description.</p>
        </main>
      </body>
    </html>`

	doc := FromHTML([]byte(html))
	if strings.Contains(doc.Text, "tracking") {
		t.Fatalf("script content leaked")
	}
	if strings.Contains(doc.Text, "We use cookies") {
		t.Fatalf("consent banner leaked")
	}
	if !strings.Contains(doc.Text, "Visible description.") {
		t.Fatalf("expected visible content")
	}
}

func TestFromHTML_MalformedInput(t *testing.T) {
	doc := FromHTML([]byte("<div><p>unclosed"))
	if !strings.Contains(doc.Text, "unclosed") {
		t.Fatalf("parser should tolerate malformed HTML, got %q", doc.Text)
	}
}
