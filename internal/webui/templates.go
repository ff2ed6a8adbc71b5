package webui

import "html/template"

// parseTemplates builds the full view template set. Every view shares the
// head/header/footer partials; the layout is deliberately plain so pages
// stay readable without client-side rendering.
func parseTemplates() *template.Template {
	t := template.New("views")
	template.Must(t.Parse(headPartial))
	template.Must(t.Parse(headerPartial))
	template.Must(t.Parse(footerPartial))
	template.Must(t.Parse(categoriesTemplate))
	template.Must(t.Parse(subcategoriesTemplate))
	template.Must(t.Parse(errorsTemplate))
	template.Must(t.Parse(detailTemplate))
	template.Must(t.Parse(noResultsTemplate))
	return t
}

const headPartial = `{{define "head"}}<!DOCTYPE html>
<html lang="en" data-theme="{{.Theme}}">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Meta.Title}}</title>
  <meta name="description" content="{{.Meta.Description}}">
  <style>` + cssContent + `</style>
</head>
<body>{{end}}`

const headerPartial = `{{define "header"}}
<header class="topbar">
  <a class="brand" href="/">{{.SiteName}}</a>
  <form class="search" action="/search" method="get" autocomplete="off">
    <input type="search" name="q" id="search-input" maxlength="100"
           placeholder="Search error codes..." value="">
    <div class="suggestions" id="suggestions" hidden></div>
  </form>
  <button class="theme-toggle" id="theme-toggle" aria-label="Toggle theme">&#9681;</button>
</header>
{{with .Nav.Breadcrumbs}}
<nav class="breadcrumbs">
  {{range $i, $c := .}}{{if $i}}<span class="sep">/</span>{{end}}{{if $c.URL}}<a href="{{$c.URL}}">{{$c.Label}}</a>{{else}}<span>{{$c.Label}}</span>{{end}}{{end}}
</nav>
{{end}}
<div class="notices" id="notices"></div>
{{end}}`

const footerPartial = `{{define "footer"}}
<script>` + scriptContent + `</script>
</body>
</html>{{end}}`

const categoriesTemplate = `{{define "categories"}}{{template "head" .}}{{template "header" .}}
<main>
  <section class="stats">
    <span>{{.Data.TotalErrors}} errors documented</span>
    <span>{{.Data.TotalSolutions}} solutions</span>
  </section>
  <section class="grid">
    {{range .Data.Cards}}
    <a class="card" href="/c/{{.ID}}">
      <span class="icon">{{.Icon}}</span>
      <h2>{{.Name}}</h2>
      <p>{{.Count}} errors</p>
    </a>
    {{end}}
  </section>
  {{if .Data.History}}
  <section class="history">
    <h3>Recently viewed</h3>
    <ul>
      {{range .Data.History}}
      <li><a href="/e/{{.Code}}">{{.Code}}</a> — {{.Title}}</li>
      {{end}}
    </ul>
  </section>
  {{end}}
</main>
{{template "footer" .}}{{end}}`

const subcategoriesTemplate = `{{define "subcategories"}}{{template "head" .}}{{template "header" .}}
<main>
  <h1>{{.Nav.Category.Name}}</h1>
  <section class="grid">
    {{range .Data.Subcategories}}
    <a class="card" href="/c/{{$.Nav.Category.ID}}/s/{{.ID}}">
      <span class="icon">{{.Icon}}</span>
      <h2>{{.Name}}</h2>
    </a>
    {{end}}
  </section>
</main>
{{template "footer" .}}{{end}}`

const errorsTemplate = `{{define "errors"}}{{template "head" .}}{{template "header" .}}
<main>
  <h1>{{.Nav.Subcategory.Name}}</h1>
  <p class="muted">{{.Data.Total}} errors</p>
  <section class="list">
    {{range .Data.Records}}
    <a class="row urgency-{{.Urgency}}" href="/e/{{.Code}}">
      <span class="code">{{.Code}}</span>
      <span class="title">{{.Title}}</span>
      <span class="badge">{{.Urgency}}</span>
    </a>
    {{else}}
    <p class="muted">No errors in this subcategory.</p>
    {{end}}
  </section>
  {{with .Data.Pagination}}
  <nav class="pagination">
    {{range .}}
    {{if .Active}}<span class="page active">{{.Number}}</span>{{else}}<a class="page" href="?page={{.Number}}">{{.Number}}</a>{{end}}
    {{end}}
  </nav>
  {{end}}
</main>
{{template "footer" .}}{{end}}`

const detailTemplate = `{{define "detail"}}{{template "head" .}}{{template "header" .}}
<main>
  <article class="detail">
    <h1><span class="code">{{.Data.Record.Code}}</span> {{.Data.Record.Title}}</h1>
    <p class="facts">
      <span class="badge">{{.Data.Record.Urgency}} urgency</span>
      <span class="badge">{{.Data.Record.Frequency}}</span>
      {{with .Data.Record.System}}<span class="badge">{{.}}</span>{{end}}
      {{with .Data.Record.LastUpdate}}<span class="muted">updated {{.}}</span>{{end}}
    </p>
    <p>{{.Data.Record.Description}}</p>
    <button class="share" id="share-btn" data-code="{{.Data.Record.Code}}">Share</button>

    {{range .Data.Solutions}}
    <section class="solution">
      <h2>{{.Title}}</h2>
      <p class="facts">
        <span class="badge">{{.Level}}</span>
        <span class="badge">{{.Time}}</span>
        <span class="badge risk-{{.Risk}}">{{.Risk}} risk</span>
      </p>
      <ol>
        {{range .StepsHTML}}<li>{{.}}</li>{{end}}
      </ol>
      <button class="like{{if .Liked}} liked{{end}}"
              data-code="{{$.Data.Record.Code}}" data-index="{{.Index}}">
        &#128077; Helpful <span class="count">{{.Count}}</span>
      </button>
    </section>
    {{end}}
  </article>
</main>
<script type="application/ld+json">{{.Data.JSONLD}}</script>
{{template "footer" .}}{{end}}`

const noResultsTemplate = `{{define "noresults"}}{{template "head" .}}{{template "header" .}}
<main>
  <section class="noresults">
    <h1>Nothing here</h1>
    <p>{{.Data.Message}}</p>
    <a class="card" href="/">Back to categories</a>
  </section>
</main>
{{template "footer" .}}{{end}}`

// cssContent is the shared stylesheet, inlined into every page.
const cssContent = `
:root {
  --bg: #ffffff; --bg-card: #f6f8fa; --text: #1f2328; --muted: #656d76;
  --border: #d0d7de; --accent: #0969da; --badge: #eaeef2;
  --low: #1a7f37; --medium: #9a6700; --high: #cf222e;
}
[data-theme="dark"] {
  --bg: #0d1117; --bg-card: #161b22; --text: #e6edf3; --muted: #8b949e;
  --border: #30363d; --accent: #2f81f7; --badge: #21262d;
}
* { box-sizing: border-box; }
body { margin: 0; font-family: -apple-system, "Segoe UI", Roboto, sans-serif;
  background: var(--bg); color: var(--text); }
main { max-width: 860px; margin: 0 auto; padding: 16px; }
a { color: var(--accent); text-decoration: none; }
.topbar { display: flex; align-items: center; gap: 16px; padding: 12px 16px;
  border-bottom: 1px solid var(--border); }
.brand { font-weight: 700; color: var(--text); }
.search { position: relative; flex: 1; max-width: 420px; }
.search input { width: 100%; padding: 6px 10px; border: 1px solid var(--border);
  border-radius: 6px; background: var(--bg-card); color: var(--text); }
.suggestions { position: absolute; top: 110%; left: 0; right: 0; z-index: 10;
  background: var(--bg); border: 1px solid var(--border); border-radius: 6px; }
.suggestions a { display: block; padding: 6px 10px; color: var(--text); }
.suggestions a:hover { background: var(--bg-card); }
.theme-toggle { margin-left: auto; border: 1px solid var(--border); background: var(--bg-card);
  color: var(--text); border-radius: 6px; padding: 4px 10px; cursor: pointer; }
.breadcrumbs { padding: 8px 16px; color: var(--muted); }
.breadcrumbs .sep { margin: 0 6px; }
.notices { position: fixed; top: 16px; right: 16px; display: flex;
  flex-direction: column; gap: 8px; z-index: 100; }
.notice { padding: 10px 14px; border-radius: 6px; border: 1px solid var(--border);
  background: var(--bg-card); opacity: 1; transition: opacity .3s; }
.notice.fade { opacity: 0; }
.notice.success { border-color: var(--low); }
.notice.error { border-color: var(--high); }
.stats { display: flex; gap: 16px; color: var(--muted); margin: 8px 0 16px; }
.grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(200px, 1fr)); gap: 12px; }
.card { display: block; padding: 16px; background: var(--bg-card);
  border: 1px solid var(--border); border-radius: 8px; color: var(--text); }
.card h2 { margin: 8px 0 4px; font-size: 1.05rem; }
.card p { margin: 0; color: var(--muted); }
.list .row { display: flex; gap: 12px; align-items: center; padding: 10px 12px;
  border: 1px solid var(--border); border-radius: 6px; margin-bottom: 8px; color: var(--text); }
.row .code { font-family: monospace; color: var(--accent); }
.row .title { flex: 1; }
.badge { background: var(--badge); border-radius: 10px; padding: 2px 10px; font-size: .85rem; }
.risk-low { color: var(--low); } .risk-medium { color: var(--medium); } .risk-high { color: var(--high); }
.pagination { display: flex; gap: 6px; margin-top: 16px; }
.page { padding: 4px 10px; border: 1px solid var(--border); border-radius: 6px; }
.page.active { background: var(--accent); color: #fff; border-color: var(--accent); }
.solution { border: 1px solid var(--border); border-radius: 8px; padding: 12px 16px; margin: 16px 0; }
.like, .share { border: 1px solid var(--border); background: var(--bg-card); color: var(--text);
  border-radius: 6px; padding: 4px 12px; cursor: pointer; }
.like.liked { border-color: var(--accent); color: var(--accent); }
.muted { color: var(--muted); }
.history ul { padding-left: 18px; }
.noresults { text-align: center; padding: 48px 0; }
.noresults .card { display: inline-block; margin-top: 16px; }
pre { background: var(--bg-card); padding: 8px; border-radius: 6px; overflow-x: auto; }
code { font-family: monospace; }
`

// scriptContent wires the client-side behaviors: theme toggle, debounced
// search suggestions, transient notices (polled once, then streamed over
// the websocket), like buttons, and the share button with a clipboard
// fallback.
const scriptContent = `
(function () {
  // Theme toggle, persisted server-side.
  var toggle = document.getElementById('theme-toggle');
  toggle.addEventListener('click', function () {
    var root = document.documentElement;
    var next = root.dataset.theme === 'dark' ? 'light' : 'dark';
    root.dataset.theme = next;
    fetch('/api/prefs/theme', {
      method: 'PUT',
      headers: { 'Content-Type': 'application/json' },
      body: JSON.stringify({ theme: next })
    }).catch(function () {});
  });

  // Transient notices.
  var noticesEl = document.getElementById('notices');
  function showNotice(n) {
    var el = document.createElement('div');
    el.className = 'notice ' + (n.kind || 'info');
    el.textContent = n.message;
    noticesEl.appendChild(el);
    var ttl = new Date(n.expires_at) - new Date();
    if (!(ttl > 0)) ttl = 3000;
    setTimeout(function () {
      el.classList.add('fade');
      setTimeout(function () { el.remove(); }, 300);
    }, ttl);
  }
  try {
    var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
    var ws = new WebSocket(proto + location.host + '/ws/notices');
    ws.onmessage = function (ev) { showNotice(JSON.parse(ev.data)); };
  } catch (e) { /* notices degrade to nothing */ }

  // Debounced search suggestions (300ms, last call wins).
  var input = document.getElementById('search-input');
  var box = document.getElementById('suggestions');
  var timer = null;
  input.addEventListener('input', function () {
    clearTimeout(timer);
    var q = input.value.trim();
    if (q.length < 2) { box.hidden = true; return; }
    timer = setTimeout(function () {
      fetch('/api/suggest?q=' + encodeURIComponent(q))
        .then(function (r) { return r.json(); })
        .then(function (items) {
          box.innerHTML = '';
          items.forEach(function (it) {
            var a = document.createElement('a');
            a.href = '/e/' + encodeURIComponent(it.code);
            a.textContent = it.code + ' — ' + it.title;
            box.appendChild(a);
          });
          box.hidden = items.length === 0;
        })
        .catch(function () { box.hidden = true; });
    }, 300);
  });
  document.addEventListener('click', function (ev) {
    if (!box.contains(ev.target) && ev.target !== input) box.hidden = true;
  });

  // Helpful buttons.
  document.querySelectorAll('.like').forEach(function (btn) {
    btn.addEventListener('click', function () {
      fetch('/e/' + encodeURIComponent(btn.dataset.code) +
            '/solutions/' + btn.dataset.index + '/like', { method: 'POST' })
        .then(function (r) { return r.json(); })
        .then(function (res) {
          btn.classList.toggle('liked', res.liked);
          btn.querySelector('.count').textContent = res.count;
        })
        .catch(function () {});
    });
  });

  // Share with clipboard fallback. A rejected share/copy surfaces a
  // transient failure notice instead of failing silently.
  var share = document.getElementById('share-btn');
  if (share) {
    share.addEventListener('click', function () {
      var url = location.href;
      var fail = function () {
        showNotice({ message: 'Could not copy the link', kind: 'error' });
      };
      if (navigator.share) {
        navigator.share({ title: document.title, url: url }).catch(function () {
          copyFallback(url, fail);
        });
      } else {
        copyFallback(url, fail);
      }
    });
  }
  function copyFallback(url, fail) {
    if (navigator.clipboard) {
      navigator.clipboard.writeText(url).then(function () {
        showNotice({ message: 'Link copied', kind: 'success' });
      }, fail);
    } else {
      fail();
    }
  }
})();
`
