package devserver

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// shellPage is the static document the SPA boots from.
func shellPage(title string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>`+templ.EscapeString(title)+`</title>
<script src="/public/wasm_exec.js"></script>
<script>
const go = new Go();
WebAssembly.instantiateStreaming(fetch("/public/app.wasm"), go.importObject).then((r) => go.run(r.instance));
</script>
</head>
<body>
<div id="app"></div>
</body>
</html>
`)
		return err
	})
}
