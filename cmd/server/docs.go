package main

//go:generate swag init -g main.go -d ../../ -o ../../docs

// @title PRS FinSight API
// @version 1.0
// @description Portfolio tracking backend: transaction ledger, derived
// @description holdings with live valuation, market data, fund registry,
// @description watchlists, posts and inquiries.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
