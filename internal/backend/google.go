package backend

import (
	"context"
	"fmt"

	translate "cloud.google.com/go/translate"
	xlang "golang.org/x/text/language"
	"google.golang.org/api/option"

	"github.com/valpere/contran/internal/language"
)

// GoogleTranslator is an alternative dedicated translation provider backed
// by the Cloud Translation API. Google has no formality control; the
// register is accepted and ignored.
type GoogleTranslator struct {
	credentialsFile string
}

func NewGoogleTranslator(credentialsFile string) *GoogleTranslator {
	return &GoogleTranslator{credentialsFile: credentialsFile}
}

func (g *GoogleTranslator) Name() string {
	return "google"
}

func (g *GoogleTranslator) Translate(ctx context.Context, text string, target, source language.Language, _ language.Formality) (string, error) {
	if target.ISO639() == "" {
		return "", fmt.Errorf("google translate does not support target language %s", target.LLMFormat())
	}

	targetTag, err := xlang.Parse(target.ISO639())
	if err != nil {
		return "", fmt.Errorf("invalid target language: %w", err)
	}

	var opts []option.ClientOption
	if g.credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(g.credentialsFile))
	}

	client, err := translate.NewClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	var translations []translate.Translation
	if source == language.Unknown || source.ISO639() == "" {
		translations, err = client.Translate(ctx, []string{text}, targetTag, nil)
	} else {
		sourceTag, _ := xlang.Parse(source.ISO639())
		translations, err = client.Translate(ctx, []string{text}, targetTag, &translate.Options{Source: sourceTag})
	}
	if err != nil {
		return "", fmt.Errorf("translation failed: %w", err)
	}

	if len(translations) == 0 {
		return "", fmt.Errorf("google: %w", ErrEmptyResponse)
	}

	return translations[0].Text, nil
}
