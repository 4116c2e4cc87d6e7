// Package ui provides the interactive frontends for wgctl.
// This file contains the desktop notification system for connection events.
package ui

import (
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/yllada/wgctl/common"
)

// NotificationType represents the type of notification
type NotificationType int

const (
	NotificationInfo NotificationType = iota
	NotificationSuccess
	NotificationError
)

// Notification represents a desktop notification
type Notification struct {
	Title   string
	Message string
	Type    NotificationType
	Icon    string
}

// D-Bus names of the freedesktop notification service.
const (
	notifyDest   = "org.freedesktop.Notifications"
	notifyPath   = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyMethod = "org.freedesktop.Notifications.Notify"
)

// Urgency hint values of org.freedesktop.Notifications.
const (
	urgencyLow      byte = 0
	urgencyNormal   byte = 1
	urgencyCritical byte = 2
)

// notificationBus is the part of a D-Bus connection used to send
// notifications.
type notificationBus interface {
	Notify(n Notification, icon string, urgency byte) error
	Close() error
}

// sessionBus sends notifications over the user's session bus.
type sessionBus struct {
	conn *dbus.Conn
}

func dialSessionBus() (notificationBus, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, err
	}
	return &sessionBus{conn: conn}, nil
}

func (b *sessionBus) Notify(n Notification, icon string, urgency byte) error {
	obj := b.conn.Object(notifyDest, notifyPath)
	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(urgency),
	}
	call := obj.Call(notifyMethod, 0,
		common.AppName, // app_name
		uint32(0),      // replaces_id
		icon,
		n.Title,
		n.Message,
		[]string{}, // actions
		hints,
		int32(-1), // expire_timeout: server default
	)
	return call.Err
}

func (b *sessionBus) Close() error {
	return b.conn.Close()
}

// DBusNotifier implements common.Notifier with freedesktop notifications.
// A connection is opened per notification; wgctl sends at most a few per run.
type DBusNotifier struct {
	dial func() (notificationBus, error)
}

// NewDBusNotifier creates a notifier using the session bus.
func NewDBusNotifier() *DBusNotifier {
	return &DBusNotifier{dial: dialSessionBus}
}

// Notify sends a notification whose type is derived from its title.
func (d *DBusNotifier) Notify(title, message string) error {
	return d.Show(Notification{
		Title:   title,
		Message: message,
		Type:    typeForTitle(title),
	})
}

// Show displays a notification through the session bus.
func (d *DBusNotifier) Show(n Notification) error {
	bus, err := d.dial()
	if err != nil {
		return fmt.Errorf("cannot connect to session bus: %w", err)
	}
	defer bus.Close()

	icon := n.Icon
	if icon == "" {
		icon = iconFor(n.Type)
	}

	if err := bus.Notify(n, icon, urgencyFor(n.Type)); err != nil {
		return fmt.Errorf("notification failed: %w", err)
	}
	return nil
}

func typeForTitle(title string) NotificationType {
	switch title {
	case common.TitleConnected:
		return NotificationSuccess
	case common.TitleConnectionError:
		return NotificationError
	default:
		return NotificationInfo
	}
}

func iconFor(t NotificationType) string {
	switch t {
	case NotificationSuccess:
		return "network-vpn"
	case NotificationError:
		return "network-vpn-error"
	default:
		return "network-vpn-disconnected"
	}
}

func urgencyFor(t NotificationType) byte {
	switch t {
	case NotificationError:
		return urgencyCritical
	case NotificationSuccess:
		return urgencyNormal
	default:
		return urgencyLow
	}
}
