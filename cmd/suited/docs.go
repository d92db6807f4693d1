package main

// General API documentation.
//
// @title           suited API
// @version         1.0
// @description     HTTP API for memory-budgeted model suite management.
//
// @BasePath  /
//
// @schemes http
