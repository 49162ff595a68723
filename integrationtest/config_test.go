package integrationtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/buildnotify/config"
	"github.com/randalmurphal/buildnotify/notify"
	"github.com/randalmurphal/buildnotify/testutil"
	"github.com/randalmurphal/buildnotify/workflow"
)

// resolve layers a global file, a local file and env over the defaults.
func resolve(t *testing.T, global, local string, env map[string]string) config.Settings {
	t.Helper()

	home := t.TempDir()
	root := testutil.SetupGitRoot(t)
	globalPath := testutil.WriteFile(t, home, filepath.Join(".config", "buildnotify", "config.yaml"), global)
	localPath := testutil.WriteFile(t, root, config.LocalConfigName, local)

	cfg := config.DefaultResolverConfig()
	cfg.Getenv = func(k string) string { return env[k] }

	settings, err := config.Delivery(config.NewResolverWithPaths(cfg, globalPath, localPath).Resolve())
	require.NoError(t, err)
	return settings
}

// TestConfigToWebhookDelivery resolves a webhook setup from files and env and
// delivers to every configured room.
func TestConfigToWebhookDelivery(t *testing.T) {
	server := newChatServer(t)

	settings := resolve(t,
		"base_url: "+server.URL+"/hook\ntoken: T000-B000\ncolor: warning\n",
		"room: \"#frontend, #qa\"\n",
		map[string]string{"BUILDNOTIFY_ROOM": "#frontend;#qa ops"},
	)
	require.False(t, settings.Delivery.BotUser)
	require.Equal(t, []string{"#frontend", "#qa", "ops"}, settings.Delivery.Rooms)

	d := notify.New(settings.Delivery, notify.WithHTTPClient(server.Client()))
	assert.Equal(t, notify.ModeWebhook, d.Mode())

	report := d.SendDetailed(context.Background(), notify.Request{
		Message: "frontend - #7 Unstable",
		Color:   settings.Color,
	})
	require.True(t, report.Outcome.Success, "report: %+v", report)

	posts := server.Posts()
	require.Len(t, posts, 3)
	for i, room := range []string{"#frontend", "#qa", "ops"} {
		assert.True(t, posts[i].Webhook)
		assert.Equal(t, "/hook/T000-B000", posts[i].Path)
		assert.Equal(t, room, posts[i].Channel)
		assert.Equal(t, "warning", posts[i].Attachment.Color)
		assert.Nil(t, posts[i].Attachment.ReplyBroadcast)
	}

	assert.Equal(t, "ops", report.Outcome.Channel)
	assert.Equal(t, "1700000000.000003", report.Outcome.TS)
}

// TestConfigCredentialFile resolves the bot token through a credential id
// stored in the credentials file.
func TestConfigCredentialFile(t *testing.T) {
	server := newChatServer(t)
	credsDir := t.TempDir()
	credsFile := testutil.WriteFile(t, credsDir, "credentials.yaml", "buildnotify-it-token: xoxb-from-file\n")

	settings := resolve(t,
		"token: xoxb-plain\nbot_user: true\ncredentials_file: "+credsFile+"\n",
		"token_credential_id: buildnotify-it-token\nroom: \"#builds\"\n",
		nil,
	)

	d := notify.New(settings.Delivery,
		notify.WithHTTPClient(server.Client()),
		notify.WithAPIURL(server.APIURL()),
		notify.WithCredentials(settings.Credentials()),
	)

	out := d.Send(context.Background(), notify.Request{Message: "hello"})
	require.True(t, out.Success)

	posts := server.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, "/api/chat.postMessage", posts[0].Path)
	assert.Equal(t, "xoxb-from-file", posts[0].Token)
}

// TestStepRunnerOverGlobalConfig runs send steps against settings resolved
// from config, with per-step overrides.
func TestStepRunnerOverGlobalConfig(t *testing.T) {
	server := newChatServer(t)

	settings := resolve(t,
		"team_domain: acme\ntoken: xoxb-global\nbot_user: true\nroom: \"#builds\"\n",
		"",
		nil,
	)

	runner := &workflow.StepRunner{
		Global: settings.Delivery,
		Options: []notify.Option{
			notify.WithHTTPClient(server.Client()),
			notify.WithAPIURL(server.APIURL()),
		},
	}

	first, err := runner.Run(context.Background(), workflow.SendStep{
		Message: "deploy started",
		Color:   "#439FE0",
	})
	require.NoError(t, err)
	assert.Equal(t, "true", first[notify.SuccessKey])
	assert.Equal(t, "#builds", first[notify.ChannelKey])

	reply, err := runner.Run(context.Background(), workflow.SendStep{
		Message:  "deploy finished",
		Color:    "good",
		ThreadTS: first[notify.TSKey],
	})
	require.NoError(t, err)
	assert.Equal(t, first[notify.TSKey], reply[notify.ThreadTSKey])

	_, err = runner.Run(context.Background(), workflow.SendStep{
		Message:     "threaded to two rooms",
		Channel:     "#a #b",
		ThreadTS:    first[notify.TSKey],
		FailOnError: true,
	})
	require.Error(t, err)

	posts := server.Posts()
	require.Len(t, posts, 2, "a thread spanning rooms sends nothing")
	assert.Equal(t, "#439FE0", posts[0].Attachment.Color)
	assert.Equal(t, "xoxb-global", posts[1].Token)
}
