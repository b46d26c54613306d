package handlers

import (
	"html/template"

	"github.com/gin-gonic/gin"
)

// The emulated gateway serves two small server-rendered pages: the OAuth
// authorize challenge and the CAS SPA login. Both carry the test-account
// quick-fill panel the upstream test environment ships, so frontends
// built against it keep working unchanged.

var loginChallengePage = template.Must(template.New("authorize").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>（仿）东南大学统一身份认证</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 50px; background-color: #f5f5f5; }
        .login-container { background: white; padding: 30px; border-radius: 8px; max-width: 400px; margin: 0 auto; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        .logo { text-align: center; margin-bottom: 20px; color: #1976d2; }
        .form-group { margin-bottom: 15px; }
        label { display: block; margin-bottom: 5px; font-weight: bold; }
        input[type="text"], input[type="password"] { width: 100%; padding: 10px; border: 1px solid #ddd; border-radius: 4px; box-sizing: border-box; }
        button { width: 100%; padding: 12px; background-color: #1976d2; color: white; border: none; border-radius: 4px; font-size: 16px; cursor: pointer; }
        .error-box { background-color: #ffebee; color: #c62828; padding: 10px; border-radius: 4px; margin-bottom: 15px; font-size: 14px; }
        .test-info { background-color: #e3f2fd; padding: 10px; border-radius: 4px; margin-bottom: 20px; font-size: 14px; }
        .test-info button { width: auto; background: #6c757d; padding: 8px 10px; font-size: 12px; margin: 2px; }
    </style>
</head>
<body>
    <div class="login-container">
        <div class="logo"><h2>（仿）东南大学统一身份认证</h2></div>
        {{if .Error}}<div class="error-box">用户名或密码错误</div>{{end}}
        <div class="test-info">
            <strong>测试环境</strong><br>
            <button type="button" onclick="fillAccount('213001001', 'JYc1g3e5BccjxPr')">213001001</button>
            <button type="button" onclick="fillAccount('213001002', 'Icarus1432')">213001002</button>
            <button type="button" onclick="fillAccount('213001003', 'DevTest2024')">213001003</button>
            <button type="button" onclick="fillAccount('800000001', 'AdminPass123')">800000001</button>
            <div style="margin-top: 10px; font-size: 11px; color: #666;">点击上方按钮快速填入测试账号</div>
        </div>
        <form method="post" action="/cas/oauth2.0/authorize">
            <input type="hidden" name="client_id" value="{{.ClientID}}" />
            <input type="hidden" name="redirect_uri" value="{{.RedirectURI}}" />
            <input type="hidden" name="response_type" value="{{.ResponseType}}" />
            <input type="hidden" name="scope" value="{{.Scope}}" />
            <input type="hidden" name="state" value="{{.State}}" />
            <div class="form-group"><label>用户名:</label><input type="text" name="username" required /></div>
            <div class="form-group"><label>密码:</label><input type="password" name="password" required /></div>
            <button type="submit">登录</button>
        </form>
    </div>
    <script>
        function fillAccount(username, password) {
            document.querySelector('input[name="username"]').value = username;
            document.querySelector('input[name="password"]').value = password;
        }
    </script>
</body>
</html>
`))

type loginChallengeData struct {
	ClientID     string
	RedirectURI  string
	ResponseType string
	Scope        string
	State        string
	Error        string
}

var casLoginPage = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>（仿）东南大学统一身份认证</title>
    <style>
        body { font-family: 'Microsoft YaHei', Arial, sans-serif; margin: 0; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); min-height: 100vh; display: flex; align-items: center; justify-content: center; }
        .login-container { background: white; padding: 40px; border-radius: 12px; max-width: 420px; width: 90%; box-shadow: 0 15px 35px rgba(0,0,0,0.1); }
        .logo { text-align: center; margin-bottom: 30px; color: #333; }
        .logo h1 { margin: 0; font-size: 24px; font-weight: 300; }
        .logo .subtitle { color: #666; font-size: 14px; margin-top: 5px; }
        .form-group { margin-bottom: 20px; }
        label { display: block; margin-bottom: 8px; font-weight: 500; color: #555; font-size: 14px; }
        input[type="text"], input[type="password"] { width: 100%; padding: 12px 16px; border: 2px solid #e1e5e9; border-radius: 8px; box-sizing: border-box; font-size: 16px; }
        button { width: 100%; padding: 14px; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; border: none; border-radius: 8px; font-size: 16px; cursor: pointer; }
        .error-box { background-color: #ffebee; color: #c62828; padding: 12px; border-radius: 8px; margin-bottom: 20px; font-size: 14px; }
        .service-info { background: #f8f9fa; padding: 12px; border-radius: 6px; font-size: 12px; color: #666; margin-bottom: 20px; word-break: break-all; }
        .test-info { background: linear-gradient(135deg, #e3f2fd 0%, #f3e5f5 100%); padding: 16px; border-radius: 8px; margin-bottom: 25px; font-size: 13px; border-left: 4px solid #667eea; }
        .test-info button { width: auto; background: #6c757d; padding: 8px 10px; font-size: 12px; border-radius: 4px; margin: 2px; }
    </style>
</head>
<body>
    <div class="login-container">
        <div class="logo">
            <h1>东南大学</h1>
            <div class="subtitle">统一身份认证系统</div>
        </div>
        {{if .Error}}<div class="error-box">用户名或密码错误</div>{{end}}
        {{if .Service}}<div class="service-info"><strong>回调服务:</strong><br>{{.Service}}</div>{{end}}
        <div class="test-info">
            <strong>测试环境</strong><br>
            <button type="button" onclick="fillAccount('213001001', 'JYc1g3e5BccjxPr')">213001001</button>
            <button type="button" onclick="fillAccount('213001002', 'Icarus1432')">213001002</button>
            <button type="button" onclick="fillAccount('213001003', 'DevTest2024')">213001003</button>
            <button type="button" onclick="fillAccount('800000001', 'AdminPass123')">800000001</button>
            <div style="margin-top: 10px; font-size: 11px; color: #666;">点击上方按钮快速填入测试账号</div>
        </div>
        <form method="post" action="/cas/oauth2.0/login">
            <input type="hidden" name="service" value="{{.Service}}" />
            <div class="form-group"><label>用户名:</label><input type="text" name="username" required placeholder="请输入用户名" /></div>
            <div class="form-group"><label>密码:</label><input type="password" name="password" required placeholder="请输入密码" /></div>
            <button type="submit">登录</button>
        </form>
    </div>
    <script>
        function fillAccount(username, password) {
            document.querySelector('input[name="username"]').value = username;
            document.querySelector('input[name="password"]').value = password;
        }
    </script>
</body>
</html>
`))

type casLoginData struct {
	Service string
	Error   string
}

var loginSuccessPage = template.Must(template.New("success").Parse(`<!DOCTYPE html>
<html>
<head><title>登录成功</title></head>
<body>
    <div style="text-align: center; padding: 50px; font-family: Arial, sans-serif;">
        <h1 style="color: #4caf50;">✅ 登录成功</h1>
        <p>用户: {{.Name}}</p>
        <p>邮箱: {{.Email}}</p>
    </div>
</body>
</html>
`))

type loginSuccessData struct {
	Name  string
	Email string
}

var logoutPage = template.Must(template.New("logout").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>登出成功</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 50px; background-color: #f5f5f5; }
        .logout-container { background: white; padding: 30px; border-radius: 8px; max-width: 400px; margin: 0 auto; box-shadow: 0 2px 10px rgba(0,0,0,0.1); text-align: center; }
        .success { color: #4caf50; }
    </style>
</head>
<body>
    <div class="logout-container">
        <h2 class="success">登出成功</h2>
        <p>您已成功登出东南大学统一身份认证系统</p>
        <p><a href="/cas/oauth2.0/authorize">重新登录</a></p>
    </div>
</body>
</html>
`))

func renderHTML(c *gin.Context, status int, tmpl *template.Template, data any) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := tmpl.Execute(c.Writer, data); err != nil {
		// Headers are already written; nothing left to do but note it.
		_ = c.Error(err)
	}
}

func jsonError(c *gin.Context, status int, code, description string) {
	body := gin.H{"error": code}
	if description != "" {
		body["error_description"] = description
	}
	c.JSON(status, body)
}
