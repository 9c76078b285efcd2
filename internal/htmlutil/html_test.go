package htmlutil

import (
	"strings"
	"testing"
)

func TestSanitizeStripsActiveContent(t *testing.T) {
	t.Parallel()

	in := `<h2 onclick="steal()">Top jobs</h2><script>alert(1)</script>` +
		`<p>Apply <a href="javascript:alert(1)">here</a> or <a href="https://hiringdekho.in/jobs">there</a></p>` +
		`<iframe src="https://evil.example"></iframe><!-- note -->`

	out := Sanitize(in)
	for _, banned := range []string{"<script", "onclick", "javascript:", "<iframe", "<!--"} {
		if strings.Contains(out, banned) {
			t.Fatalf("expected %q removed, got %s", banned, out)
		}
	}
	for _, kept := range []string{"<h2>Top jobs</h2>", `href="https://hiringdekho.in/jobs"`, "here"} {
		if !strings.Contains(out, kept) {
			t.Fatalf("expected %q kept, got %s", kept, out)
		}
	}
}

func TestSanitizeRejectsScriptURLsOutsideHrefAndSrc(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"svg animate":       `<svg><a><animate attributeName="href" values="javascript:alert(1)"/><text y="20">click</text></a></svg>`,
		"math link":         `<math><mtext><a href="javascript:alert(1)">x</a></mtext></math>`,
		"button formaction": `<form id="f"></form><button form="f" formaction="javascript:alert(1)">go</button>`,
		"xlink href":        `<svg><a xlink:href="javascript:alert(1)"><circle r="5"/></a></svg>`,
		"control char":      `<a href="&#1;javascript:alert(1)">x</a>`,
		"tab inside scheme": `<a href="jav&#9;ascript:alert(1)">x</a>`,
		"upper case":        `<img src="JaVaScRiPt:alert(1)">`,
		"data html":         `<a href="data:text/html;base64,PHNjcmlwdD5hbGVydCgxKTwvc2NyaXB0Pg==">x</a>`,
	}
	for name, in := range cases {
		out := strings.ToLower(Sanitize(in))
		for _, banned := range []string{"javascript:", "data:text/html", "<svg", "<math", "formaction", "xlink", "values="} {
			if strings.Contains(out, banned) {
				t.Fatalf("%s: expected %q removed, got %s", name, banned, out)
			}
		}
	}
}

func TestExcerptCutsAtWordBoundary(t *testing.T) {
	t.Parallel()

	in := `<h1>Resume tips</h1><p>Keep   your resume short and focused on impact.</p><style>p{}</style>`
	got := Excerpt(in, 30)
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("expected ellipsis, got %q", got)
	}
	if strings.Contains(got, "p{}") {
		t.Fatalf("style text leaked into excerpt: %q", got)
	}
	if !strings.HasPrefix(got, "Resume tips Keep your resume") {
		t.Fatalf("unexpected excerpt %q", got)
	}

	if short := Excerpt("<p>Short</p>", 160); short != "Short" {
		t.Fatalf("expected untruncated text, got %q", short)
	}
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Top 10 Jobs in Bengaluru!":   "top-10-jobs-in-bengaluru",
		"  Café   Résumé  Guide  ":     "cafe-resume-guide",
		"---":                         "post",
		"Work-from-home: pros & cons": "work-from-home-pros-cons",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
