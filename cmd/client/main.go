package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/humanbelnik/planpoker/core/internal/config"
	"github.com/humanbelnik/planpoker/core/internal/eventbus"
	"github.com/humanbelnik/planpoker/core/internal/infra/httpstore"
	"github.com/humanbelnik/planpoker/core/internal/infra/wsfeed"
	"github.com/humanbelnik/planpoker/core/internal/model"
	"github.com/humanbelnik/planpoker/core/internal/usecase/gateway"
	"github.com/humanbelnik/planpoker/core/internal/usecase/session"
)

var (
	roomFlag   = flag.String("room", "", "room id to join")
	createFlag = flag.String("create", "", "create a room with this name and join it")
	nameFlag   = flag.String("name", "guest", "display name")
)

const help = `commands:
  vote <value>        submit a vote
  start [topic]       start a round
  reveal | reset      end or clear the round
  toggle              show or hide votes
  options a,b,c       replace vote options
  rename <room name>  rename the room
  name <display name> change your name
  promote|demote|kick <participant id>
  who | tally         print participants or the vote tally
  leave | quit`

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := httpstore.New(cfg.Client.BaseURL, httpstore.Credentials{
		JWT:   cfg.Client.JWT,
		Token: cfg.Client.Token,
	})
	if cfg.Client.JWT == "" && cfg.Client.Token == "" {
		if _, err := store.IssueSession(ctx); err != nil {
			log.Fatalf("failed to open session: %v", err)
		}
		defer revokeSession(store)
	}

	roomID := *roomFlag
	if *createFlag != "" {
		room, err := store.CreateRoom(ctx, *createFlag, nil, nil)
		if err != nil {
			log.Fatalf("failed to create room: %v", err)
		}
		roomID = room.ID
		fmt.Printf("created room %s\n", roomID)
	}
	if roomID == "" {
		log.Fatal("either -room or -create is required")
	}

	self, err := store.Join(ctx, roomID, *nameFlag, nil)
	if err != nil {
		log.Fatalf("failed to join: %v", err)
	}

	// Subscribe before reading the snapshot so no change falls in between.
	feed, err := wsfeed.Dial(ctx, cfg.Client.BaseURL, roomID, store.Credentials().Header())
	if err != nil {
		log.Fatalf("failed to open change feed: %v", err)
	}
	snapshot, err := store.Snapshot(ctx, roomID)
	if err != nil {
		_ = feed.Close()
		log.Fatalf("failed to load room: %v", err)
	}

	s := session.New(gateway.New(store, roomID))
	s.Bus().Subscribe(printEvent)
	if err := s.Start(ctx, snapshot, self.ID, feed); err != nil {
		log.Fatalf("failed to start session: %v", err)
	}
	defer s.Close()

	fmt.Printf("joined %q as %s (%s)\n", snapshot.Room.Name, self.Name, self.ID)
	fmt.Println(help)

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- strings.TrimSpace(scanner.Text())
		}
		close(lines)
	}()

	for {
		select {
		case <-s.Done():
			fmt.Printf("session ended: %s\n", s.State())
			return
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if quit := execute(ctx, s, line); quit {
				return
			}
		}
	}
}

// revokeSession drops the device session this process opened. ctx may
// already be cancelled by then.
func revokeSession(store *httpstore.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.RevokeSession(ctx); err != nil {
		log.Printf("failed to close session: %v", err)
	}
}

func execute(ctx context.Context, s *session.Session, line string) (quit bool) {
	verb, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	var err error
	switch verb {
	case "":
		return false
	case "vote":
		err = s.SubmitVote(ctx, arg)
	case "start":
		var topic *string
		if arg != "" {
			topic = &arg
		}
		err = s.StartVoting(ctx, topic)
	case "reveal":
		err = s.Reveal(ctx)
	case "reset":
		err = s.Reset(ctx)
	case "toggle":
		var show bool
		if show, err = s.ToggleShowVotes(ctx); err == nil {
			fmt.Printf("show votes: %t\n", show)
		}
	case "options":
		options := strings.Split(arg, ",")
		for i := range options {
			options[i] = strings.TrimSpace(options[i])
		}
		_, err = s.UpdateSettings(ctx, model.Settings{VoteOptions: options})
	case "rename":
		_, err = s.UpdateSettings(ctx, model.Settings{Name: &arg})
	case "name":
		err = s.UpdateName(ctx, arg)
	case "promote":
		err = s.Promote(ctx, arg)
	case "demote":
		err = s.Demote(ctx, arg)
	case "kick":
		err = s.Kick(ctx, arg)
	case "who":
		printParticipants(s)
	case "tally":
		printTally(s)
	case "leave":
		if err = s.Leave(ctx); err == nil {
			return true
		}
	case "quit":
		return true
	default:
		fmt.Println(help)
	}

	if err != nil {
		fmt.Printf("error (%s): %v\n", gateway.Reason(err), err)
	}
	return false
}

func printParticipants(s *session.Session) {
	snapshot := s.Snapshot()
	fmt.Printf("%s [%s]\n", snapshot.Room.Name, snapshot.Room.VotingStatus)
	for _, p := range snapshot.Participants {
		vote := "-"
		if v, visible := s.Mirror().VisibleVote(p.ID); visible && v != nil {
			vote = *v
		} else if p.CurrentVote != nil {
			vote = "voted"
		}
		fmt.Printf("  %-10s %-20s %-8s %s\n", p.ID, p.Name, p.Role, vote)
	}
}

func printTally(s *session.Session) {
	result := s.Tally()
	fmt.Printf("%d of %d voted\n", result.Voters, result.Total)
	for _, g := range result.Groups {
		fmt.Printf("  %-6s %d (%.0f%%)\n", g.Vote, g.Count, g.Percentage)
	}
	if result.Average != nil {
		fmt.Printf("  average %.2f\n", *result.Average)
	}
}

func printEvent(e eventbus.Event) {
	switch ev := e.(type) {
	case eventbus.VotingStatusChanged:
		fmt.Printf("* voting %s -> %s\n", ev.From, ev.To)
	case eventbus.TopicChanged:
		if ev.Topic != nil {
			fmt.Printf("* topic: %s\n", *ev.Topic)
		}
	case eventbus.ShowVotesChanged:
		fmt.Printf("* show votes: %t\n", ev.ShowVotes)
	case eventbus.VoteOptionsChanged:
		fmt.Printf("* options: %s\n", strings.Join(ev.Options, ", "))
	case eventbus.RoomNameChanged:
		fmt.Printf("* room renamed to %q\n", ev.Name)
	case eventbus.ParticipantJoined:
		fmt.Printf("* %s joined\n", ev.Participant.Name)
	case eventbus.ParticipantLeft:
		fmt.Printf("* %s left\n", ev.Participant.Name)
	case eventbus.RoleChanged:
		fmt.Printf("* you are now %s\n", ev.To)
	case eventbus.VoteSubmitted:
		if ev.Vote == nil {
			fmt.Println("* your vote is cleared")
		} else {
			fmt.Printf("* your vote: %s\n", *ev.Vote)
		}
	case eventbus.ForcedDisconnect:
		fmt.Println("* you were removed from the room")
	case eventbus.RoomGone:
		fmt.Println("* the room was deleted")
	case eventbus.Error:
		fmt.Printf("* error (%s): %v\n", ev.Reason, ev.Err)
	}
}
