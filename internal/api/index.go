package api

// indexHTML is the single-page UI served at /. It posts to /api/scan and
// renders the outcome table client-side; nothing is stored server-side.
const indexHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width,initial-scale=1"/>
<title>Endpoint Scanner</title>
<style>
  body{background:#071019;color:#e6f0f6;font-family:ui-sans-serif,system-ui,sans-serif;margin:0;padding:24px}
  .container{max-width:980px;margin:0 auto}
  h1{font-size:20px}
  .card{background:#0b1620;border-radius:10px;padding:16px;margin-bottom:14px}
  .form-row{display:flex;gap:8px}
  input[type=text]{flex:1;padding:10px 12px;border-radius:8px;border:1px solid rgba(255,255,255,.08);background:#071a24;color:#dff7f0}
  button{background:#00f5d4;border:none;padding:10px 14px;border-radius:8px;color:#012226;font-weight:700;cursor:pointer}
  button[disabled]{opacity:.6;cursor:default}
  table{width:100%;border-collapse:collapse;font-size:13px;margin-top:12px}
  th,td{padding:8px 10px;text-align:left;border-bottom:1px solid rgba(255,255,255,.06)}
  .ok{color:#00d27a;font-weight:700}
  .redir{color:#ffd166;font-weight:700}
  .err{color:#ff6b6b;font-weight:700}
  .small{font-size:12px;color:#9aa7b2}
</style>
</head>
<body>
<div class="container">
  <h1>Endpoint Scanner</h1>
  <div class="card">
    <div class="form-row">
      <input id="target" type="text" placeholder="https://example.com or example.com"/>
      <button id="scanBtn">Scan</button>
    </div>
    <div class="small" style="margin-top:8px">
      <label><input id="useDefault" type="checkbox" checked/> Use default wordlist</label>
      &nbsp; Concurrency:
      <select id="concurrency"><option>6</option><option selected>10</option><option>20</option></select>
      &nbsp; <span id="status">Idle</span>
    </div>
    <div class="small" style="margin-top:8px">This tool respects robots.txt. Scan only permitted targets.</div>
  </div>
  <div id="resultsCard" class="card" style="display:none">
    <strong>Scan results</strong> <span class="small" id="summary"></span>
    <button id="downloadBtn" style="float:right">Download JSON</button>
    <div id="resultsArea"></div>
  </div>
</div>
<script>
const scanBtn = document.getElementById('scanBtn');
const statusEl = document.getElementById('status');
const resultsCard = document.getElementById('resultsCard');
const resultsArea = document.getElementById('resultsArea');
const summaryEl = document.getElementById('summary');

scanBtn.addEventListener('click', async () => {
  const target = document.getElementById('target').value.trim();
  if (!target) return alert('Enter a target URL or domain');
  scanBtn.disabled = true;
  statusEl.textContent = 'Scanning...';
  try {
    const resp = await fetch('/api/scan', {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify({
        target,
        use_default: document.getElementById('useDefault').checked,
        concurrency: parseInt(document.getElementById('concurrency').value, 10)
      })
    });
    const data = await resp.json();
    if (!resp.ok) throw new Error(data.error || resp.statusText);
    render(data);
    statusEl.textContent = 'Done';
  } catch (err) {
    statusEl.textContent = 'Error: ' + err.message;
  } finally {
    scanBtn.disabled = false;
  }
});

document.getElementById('downloadBtn').addEventListener('click', () => {
  const txt = resultsArea.getAttribute('data-json');
  if (!txt) return;
  const url = URL.createObjectURL(new Blob([txt], {type: 'application/json'}));
  const a = document.createElement('a');
  a.href = url;
  a.download = 'scan_results.json';
  a.click();
  URL.revokeObjectURL(url);
});

function render(data) {
  resultsCard.style.display = 'block';
  summaryEl.textContent = '• checked ' + data.checked + ' paths • took ' + data.duration_s.toFixed(2) + 's';
  resultsArea.setAttribute('data-json', JSON.stringify(data.results, null, 2));
  let html = '<table><thead><tr><th>Status</th><th>URL</th><th>Final URL</th><th>Server</th><th>Length</th></tr></thead><tbody>';
  for (const r of data.results || []) {
    if (r.skipped) {
      html += '<tr><td class="small">SKIP</td><td colspan="4" class="small">' + r.url + ' (' + r.skipped + ')</td></tr>';
    } else if (r.error) {
      html += '<tr><td class="err">ERR</td><td colspan="4" class="small">' + r.url + ' → ' + r.error + ': ' + (r.error_detail || '') + '</td></tr>';
    } else {
      const cls = r.status < 300 ? 'ok' : (r.status < 400 ? 'redir' : 'err');
      html += '<tr><td class="' + cls + '">' + r.status + '</td><td class="small">' + r.url +
        '</td><td class="small">' + (r.final_url || '') + '</td><td class="small">' + (r.server || '') +
        '</td><td class="small">' + (r.content_length == null ? '-' : r.content_length) + '</td></tr>';
    }
  }
  resultsArea.innerHTML = html + '</tbody></table>';
}
</script>
</body>
</html>
`
