package ban

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	alertFrom        = os.Getenv("ALERT_FROM") // sender email
	alertTo          = os.Getenv("ALERT_TO")   // receiver email
	smtpServer       = os.Getenv("SMTP_SERVER")
	smtpPort         = os.Getenv("SMTP_PORT")
	smtpUser         = os.Getenv("SMTP_USER")
	smtpPassword     = os.Getenv("SMTP_PASS")
	smtpAuthDisabled = os.Getenv("SMTP_AUTH_DISABLED")

	rdb *redis.Client
	ctx = context.Background()

	maxStrikes = 5
	lockoutTTL = 15 * time.Minute
)

// SetRedisClient wires the redis client used for strike counters. Without it
// the lockout is disabled and login failures are only logged.
func SetRedisClient(c *redis.Client) {
	rdb = c
}

// Configure sets the strike threshold and lockout duration.
func Configure(strikes, minutes int) {
	if strikes > 0 {
		maxStrikes = strikes
	}
	if minutes > 0 {
		lockoutTTL = time.Duration(minutes) * time.Minute
	}
}

func strikeKey(email string) string { return "login:strikes:" + email }
func lockKey(email string) string   { return "login:lock:" + email }

// RecordFailure adds a strike for the email and locks the account when the
// threshold is reached. Returns true when the account is now locked.
func RecordFailure(email, route string) bool {
	if rdb == nil {
		return false
	}
	strikes, err := rdb.Incr(ctx, strikeKey(email)).Result()
	if err != nil {
		log.Printf("failed to record login strike for %s: %v", email, err)
		return false
	}
	_ = rdb.Expire(ctx, strikeKey(email), lockoutTTL).Err()

	if strikes < int64(maxStrikes) {
		return false
	}
	_ = rdb.Set(ctx, lockKey(email), "1", lockoutTTL).Err()
	log.Printf("account %s locked after %d failed logins on %s", email, strikes, route)
	if err := SendLockoutAlertEmail(email, route, int(strikes)); err != nil {
		log.Printf("failed to send lockout alert: %v", err)
	}
	return true
}

// IsLocked reports whether the account is currently locked out.
func IsLocked(email string) bool {
	if rdb == nil {
		return false
	}
	n, err := rdb.Exists(ctx, lockKey(email)).Result()
	if err != nil {
		return false
	}
	return n > 0
}

// ClearStrikes resets the counters after a successful login.
func ClearStrikes(email string) {
	if rdb == nil {
		return
	}
	_ = rdb.Del(ctx, strikeKey(email), lockKey(email)).Err()
}

// SendLockoutAlertEmail notifies the operator that an account was locked.
func SendLockoutAlertEmail(email, route string, strikes int) error {
	if smtpServer == "" {
		return nil
	}

	subject := fmt.Sprintf("LOCKOUT ALERT: %s blocked", email)
	body := fmt.Sprintf("Account: %s\nRoute: %s\nStrikes: %d\nTime: %s",
		email, route, strikes, time.Now().Format(time.RFC3339))
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", alertFrom, alertTo, subject, body)

	addr := fmt.Sprintf("%s:%s", smtpServer, smtpPort)
	auth := smtp.PlainAuth("", smtpUser, smtpPassword, smtpServer)
	if smtpAuthDisabled != "" {
		auth = nil
	}

	go func() {
		if err := smtp.SendMail(addr, auth, alertFrom, []string{alertTo}, []byte(msg)); err != nil {
			log.Printf("Failed to send alert email: %v\n", err)
		}
	}()

	return nil
}
