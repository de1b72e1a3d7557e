package helpers

import (
	"fmt"
	"html"
)

// BuildPreviewHTML - страница предпросмотра статьи. bodyHTML должен быть уже очищен.
func BuildPreviewHTML(title, bodyHTML string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
  <head><meta charset="utf-8"><title>%s</title></head>
  <body style="font-family:Arial,sans-serif;background:#f7f7f7;padding:0;margin:0;">
    <table width="100%%" bgcolor="#f7f7f7" cellpadding="0" cellspacing="0" style="padding:30px 0;">
      <tr>
        <td align="center">
          <table width="760" bgcolor="#fff" cellpadding="24" cellspacing="0" style="border-radius:10px;box-shadow:0 2px 8px #eee;">
            <tr>
              <td>
                <h1 style="color:#2d74da;margin-top:0;">%s</h1>
                <div style="font-size:16px;color:#333;">%s</div>
                <hr style="border:none;border-top:1px solid #eee;margin:32px 0 12px 0;">
                <p style="font-size:12px;color:#999;margin:0;">Предпросмотр, статья не сохранена.</p>
              </td>
            </tr>
          </table>
        </td>
      </tr>
    </table>
  </body>
</html>
`, html.EscapeString(title), html.EscapeString(title), bodyHTML)
}
