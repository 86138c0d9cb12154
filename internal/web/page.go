package web

const pageHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Ideal Bedtime</title>
  {{if .ShareDescription}}
  <meta name="description" content="{{.ShareDescription}}">
  <meta property="og:description" content="{{.ShareDescription}}">
  {{end}}
  <style>
    body { font-family: system-ui, sans-serif; margin: 0 auto; padding: 24px; max-width: 480px; box-sizing: border-box; }
    * { box-sizing: border-box; }
    h2 { margin-top: 0; font-weight: 600; text-align: center; }
    .err { color: #b00020; margin: 12px 0; padding: 10px; background: #ffebee; border-radius: 6px; }
    .card { border: 1px solid #e0e0e0; border-radius: 10px; padding: 16px; margin: 16px 0; background: #fafafa; text-align: center; }
    .card .title { font-weight: 600; margin-bottom: 6px; }
    .field { margin-bottom: 18px; }
    .field label { display: block; font-weight: 500; color: #333; margin-bottom: 6px; }
    .field input { padding: 8px 10px; font-size: 1em; border: 1px solid #ccc; border-radius: 6px; width: 100%; max-width: 160px; }
    .field input:focus { outline: none; border-color: #1976d2; box-shadow: 0 0 0 2px rgba(25,118,210,0.2); }
    .hint { color: #666; font-size: 0.9em; margin-top: 4px; }
    button[type="submit"] { padding: 10px 20px; font-size: 1em; font-weight: 500; background: #1976d2; color: #fff; border: none; border-radius: 6px; cursor: pointer; }
    button[type="submit"]:hover { background: #1565c0; }
    footer { margin-top: 40px; color: #666; font-size: 0.9em; text-align: center; }
  </style>
</head>
<body>
  <h2>Ideal Bedtime</h2>

  <form id="bedtime" method="POST" action="/calc">
    <div class="field">
      <label for="wake">When do you want to wake up?</label>
      <input id="wake" name="wake" type="time" value="{{.Wake}}" required>
    </div>
    <div class="field">
      <label for="sleep">Desired amount of sleep</label>
      <input id="sleep" name="sleep" type="number" min="{{.MinSleep}}" max="{{.MaxSleep}}" step="{{.SleepStep}}" value="{{.Sleep}}">
      {{if .SleepLabel}}<div class="hint">{{.SleepLabel}}</div>{{end}}
    </div>
    <div class="field">
      <label for="coffee">Daily coffee intake</label>
      <input id="coffee" name="coffee" type="number" min="0" max="{{.MaxCoffee}}" step="1" value="{{.Coffee}}">
      {{if .CupsLabel}}<div class="hint">{{.CupsLabel}}</div>{{end}}
    </div>
    <noscript><button type="submit">Calculate</button></noscript>
  </form>

  {{if .Error}}<div class="err">{{.Error}}</div>{{end}}

  {{with .Result}}
    <div class="card">
      <div class="title">{{.Title}}</div>
      <div>{{.Body}}</div>
    </div>
  {{end}}

  <script>
(function() {
  var f = document.getElementById('bedtime');
  f.querySelectorAll('input').forEach(function(el) {
    el.addEventListener('change', function() { f.submit(); });
  });
})();
  </script>

  <footer>betterrest v{{.Version}}</footer>
</body>
</html>`
