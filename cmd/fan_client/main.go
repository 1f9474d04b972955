package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/assafmilner/The-Stand-sub001/internal/chat/domain"
	"github.com/assafmilner/The-Stand-sub001/internal/chatclient"
	"github.com/assafmilner/The-Stand-sub001/pkg/logger"
	"github.com/assafmilner/The-Stand-sub001/pkg/token"
)

// terminalToaster 把新訊息提示印在終端機上
type terminalToaster struct{}

func (terminalToaster) ShowToast(n chatclient.MessageNotification) {
	fmt.Printf("\n[新訊息] %s: %s\n> ", n.SenderName, n.Content)
}

// terminalAlerter 送出失敗時印出錯誤
type terminalAlerter struct{}

func (terminalAlerter) Alert(errMsg string) {
	fmt.Printf("\n[送出失敗] %s\n> ", errMsg)
}

func main() {
	memberURL := flag.String("member", "http://localhost:8081", "member service base url")
	chatURL := flag.String("chat", "http://localhost:8083", "chat service base url")
	tokenPath := flag.String("token-file", defaultTokenPath(), "path of the saved login token")
	flag.Parse()

	logger.SetNewNop()

	tokens := chatclient.NewFileTokenSource(*tokenPath)
	api := chatclient.NewAPIClient(*chatURL, tokens)
	wsURL := "ws" + strings.TrimPrefix(*chatURL, "http") + "/ws"

	app := &cli{
		memberURL: *memberURL,
		tokens:    tokens,
		api:       api,
		wsURL:     wsURL,
		httpCli:   &http.Client{Timeout: 10 * time.Second},
	}
	app.tryResume()

	fmt.Println("The Stand fan client. 輸入 help 看指令。")
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !app.dispatch(line) {
			break
		}
		fmt.Print("> ")
	}
	app.shutdown()
}

type cli struct {
	memberURL string
	tokens    *chatclient.FileTokenSource
	api       *chatclient.APIClient
	wsURL     string
	httpCli   *http.Client

	client  *chatclient.Client
	session *chatclient.ChatSession
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stand_token"
	}
	return filepath.Join(home, ".stand_token")
}

// tryResume 有保存的 token 就直接建好 client（重開 app 免重新登入）
func (a *cli) tryResume() {
	t := a.tokens.Token()
	if t == "" {
		return
	}
	claims, err := token.ParseJWT(t)
	if err != nil {
		a.tokens.Clear()
		return
	}
	a.buildClient(claims.UserID)
	fmt.Printf("歡迎回來，%s\n", claims.UserID)
}

func (a *cli) buildClient(selfID string) {
	conn := chatclient.NewConnManager(a.wsURL)
	a.client = chatclient.NewClient(
		selfID,
		conn,
		chatclient.NewMessageCache(a.api),
		chatclient.NewRecentCache(a.api),
		chatclient.NewNotifier(terminalToaster{}),
		terminalAlerter{},
		a.tokens,
	)
	a.client.Connect()
}

// dispatch 回傳 false 表示離開
func (a *cli) dispatch(line string) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		fmt.Println(`login <email> <password>   登入
logout                     登出
recent                     最近對話
open <fanID>               開啟聊天視窗
send <文字...>             在開啟的視窗送出訊息
close                      關閉聊天視窗
unread                     未讀訊息
quit                       離開`)
	case "login":
		if len(args) != 2 {
			fmt.Println("usage: login <email> <password>")
			break
		}
		a.login(args[0], args[1])
	case "logout":
		a.logout()
	case "recent":
		a.recent()
	case "open":
		if len(args) != 1 {
			fmt.Println("usage: open <fanID>")
			break
		}
		a.open(args[0])
	case "send":
		if a.session == nil {
			fmt.Println("先用 open 開啟聊天視窗")
			break
		}
		if !a.session.Send(strings.Join(args, " ")) {
			fmt.Println("訊息沒有送出")
		}
	case "close":
		if a.session != nil {
			a.session.Close()
			a.session = nil
		}
		if a.client != nil {
			a.client.Notifier().SetOnMessagesPage(false)
		}
	case "unread":
		a.unread()
	case "quit", "exit":
		return false
	default:
		fmt.Printf("未知指令: %s\n", cmd)
	}
	return true
}

func (a *cli) login(email, password string) {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, err := a.httpCli.Post(a.memberURL+"/fans/login", "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("登入失敗: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var result struct {
		Token string `json:"token"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		fmt.Printf("登入失敗: %v\n", err)
		return
	}
	if resp.StatusCode != http.StatusOK || result.Token == "" {
		fmt.Printf("登入失敗: %s\n", result.Error)
		return
	}

	if err := a.tokens.Save(result.Token); err != nil {
		fmt.Printf("token 保存失敗: %v\n", err)
		return
	}
	claims, err := token.ParseJWT(result.Token)
	if err != nil {
		fmt.Printf("token 解析失敗: %v\n", err)
		return
	}
	a.buildClient(claims.UserID)
	fmt.Println("登入成功")
}

func (a *cli) logout() {
	if t := a.tokens.Token(); t != "" {
		req, _ := http.NewRequest(http.MethodPost, a.memberURL+"/fans/logout", nil)
		req.Header.Set("Authorization", "Bearer "+t)
		if resp, err := a.httpCli.Do(req); err == nil {
			resp.Body.Close()
		}
	}
	a.shutdown()
	a.tokens.Clear()
	fmt.Println("已登出")
}

func (a *cli) recent() {
	if a.client == nil {
		fmt.Println("先登入")
		return
	}
	// 人在對話列表頁，新訊息只累積未讀不彈提示
	a.client.Notifier().SetOnMessagesPage(true)
	conversations := a.client.RecentConversations(context.Background())
	if len(conversations) == 0 {
		fmt.Println("沒有最近對話")
		return
	}
	for _, conv := range conversations {
		fmt.Printf("%-20s %s  (%s)\n", conv.Counterpart.Username, conv.LastMessage, conv.LastMessageAt.Local().Format("01-02 15:04"))
	}
}

func (a *cli) open(counterpartID string) {
	if a.client == nil {
		fmt.Println("先登入")
		return
	}
	if a.session != nil {
		a.session.Close()
	}
	a.client.Notifier().SetOnMessagesPage(false)
	a.session = a.client.OpenChat(context.Background(), counterpartID)

	for _, msg := range a.session.Messages() {
		fmt.Printf("%s: %s\n", msg.Sender.Username, msg.Content)
	}
	// 之後有新訊息就直接印出最後一則
	a.session.OnUpdate(func(messages []domain.DirectMessage) {
		if len(messages) == 0 {
			return
		}
		last := messages[len(messages)-1]
		fmt.Printf("\n%s: %s\n> ", last.Sender.Username, last.Content)
	})
}

func (a *cli) unread() {
	if a.client == nil {
		fmt.Println("先登入")
		return
	}
	notifications := a.client.Notifier().Notifications()
	fmt.Printf("未讀 %d 則\n", a.client.Notifier().UnreadCount())
	for _, n := range notifications {
		fmt.Printf("%s: %s\n", n.SenderName, n.Content)
	}
}

func (a *cli) shutdown() {
	if a.session != nil {
		a.session.Close()
		a.session = nil
	}
	if a.client != nil {
		a.client.Close()
		a.client = nil
	}
}
