package content

import (
	"bytes"
	"fmt"
	"text/template"
)

// analysisTemplate wraps the user's topic in a request for a long, sectioned
// Turkish analysis formatted for the web.
const analysisTemplate = `
Lütfen aşağıdaki konu hakkında detaylı ve kapsamlı bir analiz yapın.
Analiz en az 500 kelime uzunluğunda olsun ve şu bölümleri içersin:

1. Genel Değerlendirme
2. Detaylı Analiz
3. Öneriler ve Stratejiler
4. Uygulama İpuçları
5. web formatında yazın

Analiz edilecek konu:
{{.Prompt}}

Lütfen yanıtınızı Türkçe olarak verin ve teknik terimleri açıklayın.
`

var promptTemplate = template.Must(template.New("analysis").Parse(analysisTemplate))

// RenderPrompt embeds the raw prompt verbatim into the analysis template.
func RenderPrompt(prompt string) (string, error) {
	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, struct{ Prompt string }{Prompt: prompt}); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}

	return buf.String(), nil
}
