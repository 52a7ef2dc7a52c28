package pages

import "html/template"

var homePage = template.Must(template.New("home").Parse(`<body style="color: {{.Color}}; background-color: {{.Bg}}">
{{if .LoggedIn}}<h1>Welcome, {{.Name}}</h1>
<p><a href="/members">Members Area</a> | <a href="/logout">Logout</a></p>
{{else}}<h1>Home</h1>
<p><a href="/signup">Sign Up</a> | <a href="/login">Login</a></p>
{{end}}</body>`))

var welcomePage = template.Must(template.New("welcome").Parse(`<h1>Hello, {{.Name}}!</h1>
<p><a href="/members">Members Area</a> | <a href="/logout">Logout</a></p>`))

var membersPage = template.Must(template.New("members").Parse(`<h1>Members Area</h1>
<p>Welcome, {{.Name}}</p>
{{range .Images}}<img src="/img/{{.}}" alt="{{.}}" width="250" />
{{end}}<p><a href="/logout">Logout</a></p>`))

var colorPage = template.Must(template.New("color").Parse(`<h1 style="color: {{.Color}}">{{.Color}} page</h1>
<p><a href="/{{.Color}}/20">20</a> | <a href="/{{.Color}}/30">30</a> | <a href="/{{.Color}}/40">40</a></p>
<a href="/">Home</a>`))

var colorSizePage = template.Must(template.New("colorsize").Parse(`<h1 style="color: {{.Color}}; font-size: {{.Size}}px">{{.Color}} at {{.Size}}px</h1>
<a href="/{{.Color}}">Back</a>`))
