package handlers

import "html/template"

// LandingTemplate is the page a printed QR code opens. Register it with
// gin.Engine.SetHTMLTemplate.
var LandingTemplate = template.Must(template.New("landing").Parse(landingHTML))

const landingHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Goodness Glamour - Book by Phone</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; background: linear-gradient(135deg, #f8e1f4, #e0c3fc); margin: 0; padding: 24px; color: #3a2340; }
.card { max-width: 420px; margin: 0 auto; background: #fff; border-radius: 16px; padding: 28px; box-shadow: 0 8px 24px rgba(0,0,0,.08); }
h1 { font-size: 1.5rem; margin-top: 0; }
input { width: 100%; padding: 12px; font-size: 1rem; border: 1px solid #d4b5dd; border-radius: 8px; box-sizing: border-box; }
button { width: 100%; margin-top: 12px; padding: 14px; font-size: 1rem; border: 0; border-radius: 8px; background: #8e44ad; color: #fff; cursor: pointer; }
button:disabled { opacity: .6; }
ul { padding-left: 18px; }
#status { margin-top: 14px; min-height: 1.2em; }
</style>
</head>
<body>
<div class="card">
  <h1>Goodness Glamour Salon</h1>
  <p>Enter your phone number and our assistant will call you to book a doorstep appointment.</p>
  <form id="callForm">
    <input type="tel" id="phone" placeholder="+91 98765 43210" required>
    <button type="submit" id="callButton">Call me now</button>
  </form>
  <div id="status"></div>
  <h3>Services</h3>
  <ul>
  {{range .Services}}<li>{{.Name}} ({{.Category}}): {{.Price}}</li>
  {{end}}</ul>
  <p>Hours: 9 AM - 8 PM, Mon-Sun</p>
</div>
<script>
document.getElementById('callForm').addEventListener('submit', async function (e) {
  e.preventDefault();
  var button = document.getElementById('callButton');
  var status = document.getElementById('status');
  var phone = document.getElementById('phone').value.replace(/[\s-]/g, '');
  button.disabled = true;
  status.textContent = 'Placing your call...';
  try {
    var res = await fetch('/trigger-voice-call', {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify({phone_number: phone, source: 'qr_code'})
    });
    var data = await res.json();
    status.textContent = res.ok ? 'We are calling you now. Please pick up!' : ((data.error && data.error.message) || 'Could not place the call.');
  } catch (err) {
    status.textContent = 'Network error, please try again.';
  }
  button.disabled = false;
});
</script>
</body>
</html>
`
