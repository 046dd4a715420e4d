// Package pkg provides the libraries behind the bookfair stall-reservation
// client.
//
// # Overview
//
// An event's stalls come from the backend as flat records. They are placed
// on per-hall grids, shown as floor plans, collected into a cart of at most
// three stalls and confirmed one reservation at a time. The pkg directory is
// organized into four areas:
//
//  1. Domain - [venue] types, [layout] grid placement and generated maps,
//     [reservation] cart and confirmation state
//  2. Presentation - [render] text, SVG and JSON floor plans, [preview]
//     HTTP server for generated maps
//  3. Infrastructure - [cache] key-value stores (file, memory, Redis,
//     MongoDB), [session] token and preference storage, [broker] AMQP
//     reservation events, [observability] hooks
//  4. Backend - [api] REST client, [errors] coded errors and input validation
//
// # Architecture
//
// The typical data flow:
//
//	GET /api/stalls/event/{id}
//	         ↓
//	    [api] package (StallRecord list)
//	         ↓
//	    [reservation.FromRecords] (halls of positioned stalls)
//	         ↓
//	    [reservation.State] (cart, genres, confirm)
//	         ↓
//	    POST /api/reservations per stall
//
// # Quick Start
//
//	client := api.NewClient("http://localhost:8080", api.WithToken(token))
//	records, _ := client.Stalls(ctx, "12")
//	halls, _ := reservation.FromRecords(records)
//
//	st := reservation.New(reservation.Options{
//	    EventID: "12",
//	    User:    user,
//	    Token:   token,
//	    Halls:   halls,
//	    Store:   cache.NewMemory(),
//	})
//	st.Toggle(halls[0].Bookable()[0])
//	res, err := st.Confirm(ctx, client)
//
// Render a generated map without a backend:
//
//	hall := layout.GenerateHall(7, layout.DefaultEventID)
//	fmt.Println(render.Text(hall, render.View{}))
//
// # Testing
//
//	go test ./pkg/...
//
// Redis and MongoDB tests skip unless BOOKFAIR_TEST_REDIS or
// BOOKFAIR_TEST_MONGO point at a running server.
package pkg
