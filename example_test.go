package configr_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ygrebnov/configr"
)

type BotConfig struct {
	BotUsername string `toml:"bot_username"`
	Channel     string `toml:"channel"`
}

func (c *BotConfig) FillEmpty()    { *c = BotConfig{} }
func (c *BotConfig) FillDefaults() { *c = BotConfig{BotUsername: "bot", Channel: "#general"} }

func ExampleLoadWithDir() {
	dir, err := os.MkdirTemp("", "configr-example")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	cfg, err := configr.LoadWithDir[BotConfig]("Bot App", dir, true)
	if err != nil {
		panic(err)
	}
	fmt.Println(cfg.BotUsername, cfg.Channel)

	data, _ := os.ReadFile(filepath.Join(dir, "bot-app", "config.toml"))
	fmt.Print(string(data))
	// Output:
	// bot #general
	// bot_username = 'bot'
	// channel = '#general'
}
