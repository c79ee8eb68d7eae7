package whatsapp

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/skip2/go-qrcode"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	"google.golang.org/protobuf/proto"
)

// MessageHandler is a callback for incoming text messages
type MessageHandler func(ctx context.Context, msg *events.Message) error

// Config holds the WhatsApp service settings
type Config struct {
	DataDir string
}

// Service is a linked WhatsApp device used to notify the couple
type Service struct {
	client         *whatsmeow.Client
	cfg            Config
	log            zerolog.Logger
	messageHandler MessageHandler
}

// NewService opens the device store under cfg.DataDir
func NewService(ctx context.Context, cfg Config, log zerolog.Logger) (*Service, error) {
	logger := log.With().Str("component", "whatsapp").Logger()

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on", filepath.Join(cfg.DataDir, "whatsmeow.db"))
	container, err := sqlstore.New(ctx, "sqlite3", dsn, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create device store: %w", err)
	}

	deviceStore, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	s := &Service{
		client: whatsmeow.NewClient(deviceStore, nil),
		cfg:    cfg,
		log:    logger,
	}
	s.client.AddEventHandler(s.eventHandler)
	return s, nil
}

// NormalizePhoneNumber strips formatting and converts Israeli local numbers
// (05XXXXXXXX) to international form
func NormalizePhoneNumber(phoneNumber string) string {
	phoneNumber = strings.Map(func(r rune) rune {
		switch r {
		case '+', ' ', '-', '(', ')':
			return -1
		}
		return r
	}, phoneNumber)

	if strings.HasPrefix(phoneNumber, "0") && len(phoneNumber) == 10 {
		phoneNumber = "972" + phoneNumber[1:]
	}
	if strings.HasPrefix(phoneNumber, "9720") {
		phoneNumber = "972" + phoneNumber[4:]
	}
	return phoneNumber
}

// Paired reports whether the device store already holds a linked session
func (s *Service) Paired() bool {
	return s.client.Store.ID != nil
}

// Connect connects an already paired device
func (s *Service) Connect() error {
	if !s.Paired() {
		return fmt.Errorf("device is not paired, run the whatsapp pair command first")
	}
	if err := s.client.Connect(); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	return nil
}

// Pair links a new device, printing each QR code to out until the phone
// scans one or the codes run out
func (s *Service) Pair(ctx context.Context, out io.Writer) error {
	if s.Paired() {
		return s.Connect()
	}

	qrChan, err := s.client.GetQRChannel(ctx)
	if err != nil {
		return fmt.Errorf("failed to get QR channel: %w", err)
	}
	if err := s.client.Connect(); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	for evt := range qrChan {
		switch evt.Event {
		case "code":
			q, err := qrcode.New(evt.Code, qrcode.Medium)
			if err != nil {
				fmt.Fprintf(out, "QR Code: %s\n", evt.Code)
				continue
			}
			fmt.Fprintln(out, "\n"+q.ToSmallString(false))
			fmt.Fprintln(out, "Scan the QR code above with WhatsApp:")
			fmt.Fprintln(out, "   1. Open WhatsApp on your phone")
			fmt.Fprintln(out, "   2. Go to Settings > Linked Devices")
			fmt.Fprintln(out, "   3. Tap 'Link a Device'")
		case "success":
			s.log.Info().Msg("device paired")
			return nil
		default:
			s.log.Info().Str("event", evt.Event).Msg("login event")
		}
	}
	if !s.Paired() {
		return fmt.Errorf("pairing did not complete")
	}
	return nil
}

// Disconnect disconnects from WhatsApp
func (s *Service) Disconnect() {
	s.client.Disconnect()
}

// SendMessage sends a text message to a phone number registered on WhatsApp
func (s *Service) SendMessage(ctx context.Context, phoneNumber, message string) error {
	phoneNumber = NormalizePhoneNumber(phoneNumber)

	resp, err := s.client.IsOnWhatsApp(ctx, []string{"+" + phoneNumber})
	if err != nil {
		return fmt.Errorf("failed to verify number on WhatsApp: %w", err)
	}
	if len(resp) == 0 || !resp[0].IsIn {
		return fmt.Errorf("number %s is not registered on WhatsApp", phoneNumber)
	}
	jid := resp[0].JID

	s.log.Debug().Str("jid", jid.String()).Str("phone", phoneNumber).Msg("sending message")
	sent, err := s.client.SendMessage(ctx, jid, &waE2E.Message{
		Conversation: proto.String(message),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to %s: %w", phoneNumber, err)
	}
	s.log.Debug().Str("id", sent.ID).Time("timestamp", sent.Timestamp).Msg("message sent")
	return nil
}

// eventHandler handles incoming WhatsApp events
func (s *Service) eventHandler(evt any) {
	switch evt := evt.(type) {
	case *events.Message:
		s.handleMessage(evt)
	case *events.Connected:
		s.log.Info().Msg("connected to WhatsApp")
	case *events.Disconnected:
		s.log.Info().Msg("disconnected from WhatsApp")
	case *events.LoggedOut:
		s.log.Warn().Msg("logged out from WhatsApp")
	}
}

func (s *Service) handleMessage(msg *events.Message) {
	if msg.Info.IsFromMe {
		return
	}
	if s.messageHandler == nil {
		s.log.Debug().Str("sender", msg.Info.Sender.String()).Msg("received message")
		return
	}
	if err := s.messageHandler(context.Background(), msg); err != nil {
		s.log.Error().Err(err).Str("sender", msg.Info.Sender.String()).Msg("error handling message")
	}
}

// SetMessageHandler sets the handler for incoming messages
func (s *Service) SetMessageHandler(handler MessageHandler) {
	s.messageHandler = handler
}

// senderPhone extracts the phone number part of a sender JID
func senderPhone(jid types.JID) string {
	return NormalizePhoneNumber(jid.User)
}
