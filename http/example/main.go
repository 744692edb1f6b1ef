/*
Package main provides a toy example use of switchback's http stack:
a user directory whose routes are inferred from the names of its handlers.
*/
package main

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/req"
	"github.com/xy-planning-network/switchback/http/route"
	"github.com/xy-planning-network/switchback/http/validate"
	"github.com/xy-planning-network/switchback/ranger"
)

type user struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type users struct {
	mu   sync.RWMutex
	next int
	byID map[int]user
}

// get answers GET /user/:id
func (us *users) get(r *http.Request) (any, error) {
	params, _ := req.Params(r)
	id, _ := strconv.Atoi(params["id"])

	us.mu.RLock()
	defer us.mu.RUnlock()

	u, ok := us.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %d", switchback.ErrNotExist, id)
	}

	return u, nil
}

// create answers POST /user
func (us *users) create(r *http.Request) (any, error) {
	body, _ := req.Body(r)

	us.mu.Lock()
	defer us.mu.Unlock()

	us.next++
	u := user{ID: us.next, Email: body["email"].(string), Name: body["name"].(string)}
	us.byID[u.ID] = u

	return u, nil
}

// list answers GET /admin/users?limit=n
func (us *users) list(r *http.Request) (any, error) {
	q, _ := req.Query(r)
	limit, _ := strconv.Atoi(q["limit"].(string))

	us.mu.RLock()
	defer us.mu.RUnlock()

	list := make([]user, 0, limit)
	for id := 1; id <= us.next && len(list) < limit; id++ {
		if u, ok := us.byID[id]; ok {
			list = append(list, u)
		}
	}

	return list, nil
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

func newApp(opts ...ranger.RangerOption) (*ranger.Ranger, error) {
	us := &users{byID: make(map[int]user)}

	admin := route.NewNamespace("Admin").
		Add("getUsers", route.Func(us.list)).
		Add("query_getUsers", validate.Fields{{Name: "limit", Check: validate.MustTag("numeric")}})

	ns := route.NewNamespace("Users").
		Add("getUser", route.Func(us.get)).
		Add("path_getUser", "/user/:id").
		Add("params_getUser", validate.Fields{{Name: "id", Check: validate.MustTag("numeric")}}).
		Add("createUser", route.Func(us.create)).
		Add("body_createUser", validate.Fields{
			{Name: "email", Check: validate.MustTag("email")},
			{Name: "name", Check: validate.MustTag("min=1,max=64")},
		}).
		Add("routes_Admin", admin)

	opts = append([]ranger.RangerOption{
		ranger.WithRoutes(ns, route.T("get", "/health", health, true)),
	}, opts...)

	return ranger.New(opts...)
}

func main() {
	rng, err := newApp()
	if err != nil {
		log.Fatal(err)
	}

	if err := rng.Guide(); err != nil {
		log.Fatal(err)
	}
}
