package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/social-verify/internal/fetch"
	"github.com/sells-group/social-verify/internal/model"
)

var scoreFlags struct {
	name        string
	address     string
	phone       string
	url         string
	platform    string
	text        string
	textFile    string
	displayName string
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one candidate link against one business",
	Long: `Scores a single link and prints its name, address and phone signals.
Page text comes from --text or --text-file; when neither is given the
configured fetcher reads the page.

Examples:
  social-verify score --name "Le Baroque" --address "12 rue de la Paix 75002 Paris" \
    --phone "01 42 00 00 00" --url https://facebook.com/lebaroque --text-file about.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context(), cfg, "verify", false)
		if err != nil {
			return err
		}
		defer env.Close()

		lv, err := scoreOne(cmd.Context(), env)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), lv)
	},
}

func init() {
	f := scoreCmd.Flags()
	f.StringVar(&scoreFlags.name, "name", "", "business name")
	f.StringVar(&scoreFlags.address, "address", "", "business address")
	f.StringVar(&scoreFlags.phone, "phone", "", "business phone")
	f.StringVar(&scoreFlags.url, "url", "", "candidate profile URL")
	f.StringVar(&scoreFlags.platform, "type", "", "platform: facebook or instagram (default from URL)")
	f.StringVar(&scoreFlags.text, "text", "", "page text")
	f.StringVar(&scoreFlags.textFile, "text-file", "", "file holding the page text")
	f.StringVar(&scoreFlags.displayName, "display-name", "", "profile display name")
	_ = scoreCmd.MarkFlagRequired("url")
	rootCmd.AddCommand(scoreCmd)
}

func scoreOne(ctx context.Context, env *verifyEnv) (model.LinkVerification, error) {
	platform := model.ParsePlatform(scoreFlags.platform)
	if platform == model.PlatformOther {
		platform = model.PlatformFromURL(scoreFlags.url)
	}

	text := scoreFlags.text
	if scoreFlags.textFile != "" {
		data, err := os.ReadFile(scoreFlags.textFile)
		if err != nil {
			return model.LinkVerification{}, eris.Wrapf(err, "read text file %s", scoreFlags.textFile)
		}
		text = string(data)
	}

	rec := model.BusinessRecord{
		ID:      "cli",
		Name:    scoreFlags.name,
		Address: scoreFlags.address,
		Phone:   scoreFlags.phone,
		Links: []model.CandidateLink{{
			URL:         scoreFlags.url,
			Platform:    platform,
			RawText:     model.StringPtr(text),
			DisplayName: model.StringPtr(scoreFlags.displayName),
		}},
	}

	if text == "" && env.Fetcher != nil {
		populated, err := fetch.Populate(ctx, env.Fetcher, rec)
		if err != nil {
			return model.LinkVerification{}, err
		}
		rec = populated
	}

	return env.Verifier.ScoreLink(rec, rec.Links[0]), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(v), "encode json")
}
