package assistant

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

// Assistant responde el widget de ayuda de la tienda. Primero intenta
// las respuestas enlatadas; si hay token de OpenAI configurado, lo no
// reconocido va al modelo y ante cualquier falla vuelve la enlatada.

type cannedRule struct {
	re    *regexp.Regexp
	reply string
}

var canned = []cannedRule{
	{regexp.MustCompile(`env[ií]o|envios|envíos|costo`), "Realizamos envíos a todo el país. Gratis en compras superiores a 50€."},
	{regexp.MustCompile(`pago|tarjeta|cuotas|transfer`), "Aceptamos tarjeta, transferencia y efectivo. Hasta 12 cuotas en productos seleccionados."},
	{regexp.MustCompile(`(?i)devoluc`), "Tenés 10 días para cambios/devoluciones, con ticket y producto en buen estado."},
	{regexp.MustCompile(`horario|atenci[oó]n|soporte`), "Atendemos de Lunes a Viernes, 9 a 18hs. Soporte online 24/7."},
	{regexp.MustCompile(`(?i)stock|dispon`), "El stock está indicado en cada producto; el carrito respeta stock disponible."},
}

const fallbackReply = "No estoy seguro de eso. Puedo ayudarte con envíos, pagos, devoluciones, horarios y stock."

const systemPrompt = "Sos el asistente de una tienda online simulada. Respondé corto, en español, sólo sobre envíos, pagos, devoluciones, horarios y stock."

type Assistant struct {
	ai *openai.Client // nil cuando no hay token
}

func New(apiKey string) *Assistant {
	a := &Assistant{}
	if apiKey != "" {
		a.ai = openai.NewClient(apiKey)
	}
	return a
}

// CannedReply resuelve sólo con las reglas enlatadas.
func CannedReply(message string) (string, bool) {
	s := strings.ToLower(message)
	for _, r := range canned {
		if r.re.MatchString(s) {
			return r.reply, true
		}
	}
	return fallbackReply, false
}

func (a *Assistant) Reply(ctx context.Context, message string) string {
	reply, matched := CannedReply(message)
	if matched || a.ai == nil {
		return reply
	}
	resp, err := a.ai.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     openai.GPT4oMini,
		MaxTokens: 160,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
	})
	if err != nil || len(resp.Choices) == 0 {
		log.Warn().Err(err).Msg("error usando OpenAI")
		return reply
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content)
}
