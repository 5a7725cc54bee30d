package main

import (
	"bufio"
	"flag"
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/nhoffmann/rusty-minesweeper/internal/game"
	"github.com/nhoffmann/rusty-minesweeper/internal/handlers"
)

var log = logrus.New()

var (
	difficulty string
	logPath    string
)

func init() {
	flag.StringVar(&difficulty, "difficulty", "beginner",
		"beginner, intermediate or expert")
	flag.StringVar(&logPath, "log", "play.log", "log file path")
}

func setupLogging() {
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	log.SetLevel(logrus.WarnLevel)

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   logPath,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Level:      logrus.DebugLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		log.Fatal("unable to create log file hook: ", err)
	}
	log.AddHook(hook)
}

func printBoard(s *game.GameSession) {
	fmt.Println()
	fmt.Print(s.ViewGrid().ToString(s.Width))
	fmt.Println()
}

func main() {
	flag.Parse()
	setupLogging()

	d, err := game.ParseDifficulty(difficulty)
	if err != nil {
		log.Fatal(err)
	}

	r := rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))

	session, err := game.NewSessionFor(d, r)
	if err != nil {
		log.Fatal("unable to create game: ", err)
	}

	log.WithFields(logrus.Fields{
		"difficulty": d,
		"width":      session.Width,
		"height":     session.Height,
		"mineCount":  session.MineCount,
	}).Info("new game")

	fmt.Printf(
		"%s: %dx%d, %d mines\n",
		d, session.Width, session.Height, session.MineCount,
	)
	fmt.Println("commands: o x y (open), f x y (flag), r (resign), g (show), q (quit)")
	printBoard(session)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "q" {
			break
		}

		if err := handlers.ExecuteCommand(session, line); err != nil {
			log.Warn(err)
			fmt.Println(err)
			continue
		}
		log.WithField("command", line).Debug("executed")

		printBoard(session)

		switch session.Status {
		case game.Won:
			fmt.Println("you won!")
			return
		case game.Lost:
			fmt.Println("you lost!")
			return
		}
	}

	if err := scanner.Err(); err != nil {
		log.Fatal("unable to read stdin: ", err)
	}
}
